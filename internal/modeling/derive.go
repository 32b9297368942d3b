package modeling

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
	"github.com/mahastuti/Birdstrike-sub000/internal/observability"
)

// Strike-flag values on derived rows.
const (
	SourceStrike  = "1"
	SourceTraffic = "0"
)

// Canonical flight-phase values on derived rows.
const (
	PhaseLanding = "landing"
	PhaseTakeOff = "take off"
)

// strikePhases are the stored flight-phase spellings Pass A accepts, compared
// case-insensitively.
var strikePhases = []string{"landing", "take off", "take-off", "takeoff"}

// pointPattern extracts a leading signed number from free text; decimals may
// use either a dot or a comma.
var pointPattern = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// Deriver runs the two derivation passes against the datastore.
type Deriver struct {
	DS       datastore.Interface
	Settings *conf.ModelingSettings
	Metrics  *observability.Metrics
	log      *slog.Logger
}

// Result counts the outcome of one derivation run.
type Result struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// NewDeriver creates a deriver. Metrics may be nil.
func NewDeriver(ds datastore.Interface, settings *conf.ModelingSettings, metrics *observability.Metrics) *Deriver {
	return &Deriver{
		DS:       ds,
		Settings: settings,
		Metrics:  metrics,
		log:      logging.ForService("modeling"),
	}
}

// Run executes both passes. Re-running is safe: every candidate row is checked
// for existence before insert, so a second run only fills gaps.
func (d *Deriver) Run() (*Result, error) {
	if d.Metrics != nil {
		d.Metrics.DeriveRunsTotal.Inc()
	}

	total := &Result{}

	strikeResult, err := d.deriveFromStrikes()
	if err != nil {
		return nil, fmt.Errorf("deriving from bird strikes: %w", err)
	}
	total.Created += strikeResult.Created
	total.Skipped += strikeResult.Skipped
	d.Metrics.ObserveDerivation("strike", strikeResult.Created, strikeResult.Skipped)

	trafficResult, err := d.deriveFromTraffic()
	if err != nil {
		return nil, fmt.Errorf("deriving from traffic flights: %w", err)
	}
	total.Created += trafficResult.Created
	total.Skipped += trafficResult.Skipped
	d.Metrics.ObserveDerivation("traffic", trafficResult.Created, trafficResult.Skipped)

	d.log.Info("derivation complete", "created", total.Created, "skipped", total.Skipped)
	return total, nil
}

// deriveFromStrikes is Pass A: one model row per qualifying bird strike.
func (d *Deriver) deriveFromStrikes() (Result, error) {
	var result Result

	strikes, err := d.DS.StrikesForDerivation(d.Settings.Epoch, d.Settings.RemarkMarker, strikePhases)
	if err != nil {
		return result, err
	}

	for i := range strikes {
		strike := &strikes[i]

		point, ok := ExtractPoint(deref(strike.PerimeterLocation))
		if !ok {
			result.Skipped++
			continue
		}

		hour := d.Settings.DefaultHour
		timeValue := fmt.Sprintf("%02d:00", hour)
		if strike.Time != nil {
			if h, ok := hourOf(*strike.Time); ok {
				hour = h
				timeValue = *strike.Time
			}
		}

		phase := canonicalPhase(deref(strike.FlightPhase))

		exists, err := d.DS.ModelRowExists(strike.Date, point, phase, SourceStrike)
		if err != nil {
			return result, err
		}
		if exists {
			result.Skipped++
			continue
		}

		avg, err := d.DS.AverageBirdCount(PointVariants(point), strike.Date)
		if err != nil {
			return result, err
		}

		row := &datastore.ModelRecord{
			Date:         strike.Date,
			Time:         timeValue,
			TimeOfDay:    BucketForHour(hour),
			AvgBirdCount: avg,
			Point:        point,
			FlightPhase:  phase,
			Strike:       SourceStrike,
		}
		if err := d.DS.InsertModelRow(row); err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// deriveFromTraffic is Pass B: up to two model rows per traffic flight, one
// from the arrival side and one from the departure side.
func (d *Deriver) deriveFromTraffic() (Result, error) {
	var result Result

	flights, err := d.DS.TrafficForDerivation()
	if err != nil {
		return result, err
	}

	for i := range flights {
		flight := &flights[i]

		month, errM := strconv.Atoi(deref(flight.Bulan))
		year, errY := strconv.Atoi(deref(flight.Tahun))
		if errM != nil || errY != nil {
			result.Skipped += 2
			continue
		}

		arrival, arrivalOK := d.parseSide(deref(flight.ATA), flight.AvioA)
		departure, departureOK := d.parseSide(deref(flight.ATD), flight.AvioD)

		// an arrival day above the departure day means the turnaround spans a
		// month boundary, the arrival belongs to the month before
		arrivalPrevMonth := arrivalOK && departureOK && arrival.Day > departure.Day

		if arrivalOK {
			created, err := d.emitTrafficRow(arrival, month, year, arrivalPrevMonth, PhaseLanding)
			if err != nil {
				return result, err
			}
			result.add(created)
		} else {
			result.Skipped++
		}

		if departureOK {
			created, err := d.emitTrafficRow(departure, month, year, false, PhaseTakeOff)
			if err != nil {
				return result, err
			}
			result.add(created)
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// parseSide validates one movement side: the timestamp must match DD/HH:MM and
// the side's avionics flag, when present, must be "0" or "1".
func (d *Deriver) parseSide(raw string, avioFlag *string) (MovementTime, bool) {
	if avioFlag != nil && *avioFlag != "0" && *avioFlag != "1" {
		return MovementTime{}, false
	}
	return ParseMovement(raw)
}

func (d *Deriver) emitTrafficRow(m MovementTime, month, year int, prevMonth bool, phase string) (bool, error) {
	resolved, ok := ResolveMovementDate(m, month, year, prevMonth)
	if !ok {
		return false, nil
	}

	exists, err := d.DS.ModelRowExistsAt(resolved.Date, resolved.TimeString(), phase, SourceTraffic)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	row := &datastore.ModelRecord{
		Date:        resolved.Date,
		Time:        resolved.TimeString(),
		TimeOfDay:   BucketForHour(resolved.Hour),
		Point:       d.Settings.TrafficPoint,
		FlightPhase: phase,
		Strike:      SourceTraffic,
	}
	if err := d.DS.InsertModelRow(row); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Result) add(created bool) {
	if created {
		r.Created++
	} else {
		r.Skipped++
	}
}

// ExtractPoint pulls the leading number out of a free-text point field and
// rounds it to the nearest integer. Reports false when no number is present.
func ExtractPoint(raw string) (int, bool) {
	match := pointPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(value)), true
}

// PointVariants returns the string spellings under which observations may
// store the same numeric point: bare integer, dotted and comma decimals.
func PointVariants(point int) []string {
	base := strconv.Itoa(point)
	return []string{
		base,
		base + ".0",
		base + ".00",
		base + ",0",
		base + ",00",
	}
}

// canonicalPhase collapses the accepted phase spellings onto the two stored
// values.
func canonicalPhase(phase string) string {
	switch strings.ToLower(strings.TrimSpace(phase)) {
	case "take off", "take-off", "takeoff":
		return PhaseTakeOff
	default:
		return PhaseLanding
	}
}

// hourOf extracts the hour component from an HH:MM[:SS] time string.
func hourOf(timeValue string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(timeValue), ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
