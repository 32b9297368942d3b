package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

// RequiredColumns are the header names an import file must carry. The sequence
// column ("no") is not required, its value is reassigned on import anyway.
var RequiredColumns = []string{
	"act_type", "reg_no", "opr", "flight_number_origin", "flight_number_dest",
	"ata", "block_on", "block_off", "atd", "ground_time",
	"org", "des", "ps", "runway", "avio_a", "avio_d", "f_stat", "bulan", "tahun",
}

// groundTimeColumn is the overflow field: free text that may contain unquoted
// commas, splitting one logical field over several physical columns.
const groundTimeColumn = "ground_time"

// MissingColumns returns the required columns absent from the header row.
// Header matching is case-insensitive.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.ToLower(strings.TrimSpace(name))] = true
	}
	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// NormalizeRow maps one physical CSV row onto a TrafficFlight, aligned against
// the header. Ragged rows longer than the header are repaired by merging the
// excess columns back into the ground-time field. Blank cells become nil,
// month and year are normalized, and block-on/block-off are coerced to empty
// strings because their columns disallow null.
func NormalizeRow(header, row []string) datastore.TrafficFlight {
	row = mergeOverflow(header, row)
	if len(row) < len(header) {
		padded := make([]string, len(header))
		copy(padded, row)
		row = padded
	}

	cells := make(map[string]string, len(header))
	for i, name := range header {
		cells[strings.ToLower(strings.TrimSpace(name))] = row[i]
	}

	opt := func(name string) *string {
		value := cells[name]
		if value == "" {
			return nil
		}
		return &value
	}

	flight := datastore.TrafficFlight{
		ActType:            opt("act_type"),
		RegNo:              opt("reg_no"),
		Opr:                opt("opr"),
		FlightNumberOrigin: opt("flight_number_origin"),
		FlightNumberDest:   opt("flight_number_dest"),
		ATA:                opt("ata"),
		BlockOn:            cells["block_on"],
		BlockOff:           cells["block_off"],
		ATD:                opt("atd"),
		GroundTime:         opt(groundTimeColumn),
		Org:                opt("org"),
		Des:                opt("des"),
		PS:                 opt("ps"),
		Runway:             opt("runway"),
		AvioA:              opt("avio_a"),
		AvioD:              opt("avio_d"),
		FStat:              opt("f_stat"),
	}

	if bulan := NormalizeMonth(cells["bulan"]); bulan != "" {
		flight.Bulan = &bulan
	}
	if tahun := NormalizeYear(cells["tahun"]); tahun != "" {
		flight.Tahun = &tahun
	}

	return flight
}

// mergeOverflow joins excess trailing columns into the ground-time field until
// the physical column count matches the header. This recovers rows where an
// unquoted comma inside the ground-time text split it apart.
func mergeOverflow(header, row []string) []string {
	if len(row) <= len(header) {
		return row
	}
	gtIndex := -1
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) == groundTimeColumn {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return row
	}
	merged := append([]string(nil), row...)
	for len(merged) > len(header) && gtIndex+1 < len(merged) {
		merged[gtIndex] = merged[gtIndex] + ", " + merged[gtIndex+1]
		merged = append(merged[:gtIndex+1], merged[gtIndex+2:]...)
	}
	return merged
}

// NormalizeMonth zero-pads months 1..12 to two digits. Other integers pass
// through as plain decimal strings, unparsable values are kept as-is.
func NormalizeMonth(value string) string {
	value = strings.TrimSpace(value)
	month, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	if month >= 1 && month <= 12 {
		return fmt.Sprintf("%02d", month)
	}
	return strconv.Itoa(month)
}

// NormalizeYear reduces a parsable year to its plain decimal string and keeps
// anything else as-is.
func NormalizeYear(value string) string {
	value = strings.TrimSpace(value)
	year, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	return strconv.Itoa(year)
}
