package modeling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// movementPattern matches the "DD/HH:MM" arrival/departure encoding; minutes
// are optional and default to zero.
var movementPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?::(\d{1,2}))?$`)

// noDataSentinels are literal placeholders treated as an absent timestamp.
var noDataSentinels = map[string]struct{}{
	"":        {},
	"-":       {},
	"no data": {},
}

// MovementTime is one parsed arrival or departure timestamp: the day of month
// it encodes plus the time of day.
type MovementTime struct {
	Day    int
	Hour   int
	Minute int
}

// ParseMovement parses a "DD/HH:MM" timestamp string. It reports false for
// sentinel "no data" placeholders and anything that does not match.
func ParseMovement(raw string) (MovementTime, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, sentinel := noDataSentinels[strings.ToLower(trimmed)]; sentinel {
		return MovementTime{}, false
	}
	match := movementPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return MovementTime{}, false
	}
	day, _ := strconv.Atoi(match[1])
	hour, _ := strconv.Atoi(match[2])
	minute := 0
	if match[3] != "" {
		minute, _ = strconv.Atoi(match[3])
	}
	if day < 1 || hour > 23 || minute > 59 {
		return MovementTime{}, false
	}
	return MovementTime{Day: day, Hour: hour, Minute: minute}, true
}

// ResolvedMovement is a movement timestamp bound to a calendar date.
type ResolvedMovement struct {
	Date   string // YYYY-MM-DD
	Hour   int
	Minute int
}

// TimeString renders the time of day as HH:MM.
func (r ResolvedMovement) TimeString() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// ResolveMovementDate binds a movement time to a calendar date within the
// row's stated (month, year) partition.
//
// The encoded day may exceed the stated month's day count; the date then rolls
// into the following month, wrapping the year at December. When prevMonth is
// set (an arrival whose day is greater than the departure day of the same
// row), the movement is attributed to the month before the stated one. A
// resolution that lands in a year earlier than the stated one is rejected:
// those come from wrap-arounds that would fabricate history.
func ResolveMovementDate(m MovementTime, month, year int, prevMonth bool) (ResolvedMovement, bool) {
	if month < 1 || month > 12 || year <= 0 {
		return ResolvedMovement{}, false
	}

	resolvedMonth, resolvedYear := month, year
	if prevMonth {
		resolvedMonth--
		if resolvedMonth < 1 {
			resolvedMonth = 12
			resolvedYear--
		}
	}

	day := m.Day
	for day > daysInMonth(resolvedMonth, resolvedYear) {
		day -= daysInMonth(resolvedMonth, resolvedYear)
		resolvedMonth++
		if resolvedMonth > 12 {
			resolvedMonth = 1
			resolvedYear++
		}
	}

	if resolvedYear < year {
		return ResolvedMovement{}, false
	}

	return ResolvedMovement{
		Date:   fmt.Sprintf("%04d-%02d-%02d", resolvedYear, resolvedMonth, day),
		Hour:   m.Hour,
		Minute: m.Minute,
	}, true
}

func daysInMonth(month, year int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
