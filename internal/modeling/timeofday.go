// Package modeling derives the synthetic training table from stored
// bird-strike and traffic-flight records.
package modeling

// Time-of-day bucket names, as stored on every record.
const (
	BucketDiniHari = "Dini Hari"
	BucketPagi     = "Pagi"
	BucketSiang    = "Siang"
	BucketSore     = "Sore"
	BucketMalam    = "Malam"
)

// BucketForHour maps an hour of day (0..23) to its bucket. Bucket bounds are
// inclusive on the lower side: 0-2 Dini Hari, 3-9 Pagi, 10-14 Siang,
// 15-18 Sore, 19-23 Malam. Out-of-range hours fall back to Siang.
func BucketForHour(hour int) string {
	switch {
	case hour >= 0 && hour <= 2:
		return BucketDiniHari
	case hour >= 3 && hour <= 9:
		return BucketPagi
	case hour >= 10 && hour <= 14:
		return BucketSiang
	case hour >= 15 && hour <= 18:
		return BucketSore
	case hour >= 19 && hour <= 23:
		return BucketMalam
	default:
		return BucketSiang
	}
}

// BucketForTimeString maps an HH:MM[:SS] time string to its bucket, falling
// back to defaultHour when the value is empty or unparsable.
func BucketForTimeString(timeValue string, defaultHour int) string {
	if hour, ok := hourOf(timeValue); ok {
		return BucketForHour(hour)
	}
	return BucketForHour(defaultHour)
}
