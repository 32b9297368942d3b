// model.go this code defines the data model for the application
package datastore

import (
	"strings"

	"gorm.io/gorm"
)

// TrafficFlight represents one aircraft movement line imported from the
// monthly traffic CSV. Date and time fields are kept as strings, matching the
// source formats (ATA/ATD encode "DD/HH:MM").
type TrafficFlight struct {
	ID                 uint    `gorm:"primaryKey" json:"id" csv:"-"`
	No                 int     `gorm:"index:idx_traffic_no" json:"no" csv:"no"`
	ActType            *string `json:"act_type" csv:"act_type"`
	RegNo              *string `json:"reg_no" csv:"reg_no"`
	Opr                *string `json:"opr" csv:"opr"`
	FlightNumberOrigin *string `json:"flight_number_origin" csv:"flight_number_origin"`
	FlightNumberDest   *string `json:"flight_number_dest" csv:"flight_number_dest"`
	ATA                *string `gorm:"column:ata" json:"ata" csv:"ata"`
	BlockOn            string  `gorm:"not null" json:"block_on" csv:"block_on"`
	BlockOff           string  `gorm:"not null" json:"block_off" csv:"block_off"`
	ATD                *string `gorm:"column:atd" json:"atd" csv:"atd"`
	GroundTime         *string `json:"ground_time" csv:"ground_time"`
	Org                *string `json:"org" csv:"org"`
	Des                *string `json:"des" csv:"des"`
	PS                 *string `gorm:"column:ps" json:"ps" csv:"ps"`
	Runway             *string `json:"runway" csv:"runway"`
	AvioA              *string `gorm:"column:avio_a" json:"avio_a" csv:"avio_a"`
	AvioD              *string `gorm:"column:avio_d" json:"avio_d" csv:"avio_d"`
	FStat              *string `gorm:"column:f_stat" json:"f_stat" csv:"f_stat"`
	Bulan              *string `gorm:"index:idx_traffic_partition" json:"bulan" csv:"bulan"`
	Tahun              *string `gorm:"index:idx_traffic_partition" json:"tahun" csv:"tahun"`
}

// signatureFields lists the non-sequence fields in signature order. The order
// is fixed; changing it invalidates duplicate detection against stored rows.
var signatureFields = []string{
	"act_type", "reg_no", "opr", "flight_number_origin", "flight_number_dest",
	"ata", "block_on", "block_off", "atd", "ground_time",
	"org", "des", "ps", "runway", "avio_a", "avio_d", "f_stat", "bulan", "tahun",
}

// Signature returns the duplicate-detection key of a row: every field except
// the sequence number, each rendered as "field:value". Nil fields render as
// an empty value.
func (t *TrafficFlight) Signature() string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	values := []string{
		deref(t.ActType), deref(t.RegNo), deref(t.Opr),
		deref(t.FlightNumberOrigin), deref(t.FlightNumberDest),
		deref(t.ATA), t.BlockOn, t.BlockOff, deref(t.ATD), deref(t.GroundTime),
		deref(t.Org), deref(t.Des), deref(t.PS), deref(t.Runway),
		deref(t.AvioA), deref(t.AvioD), deref(t.FStat), deref(t.Bulan), deref(t.Tahun),
	}
	var b strings.Builder
	for i, field := range signatureFields {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(field)
		b.WriteByte(':')
		b.WriteString(values[i])
	}
	return b.String()
}

// BirdStrike represents one strike or near-miss incident report.
// Soft-deleted rows are retained and restorable.
type BirdStrike struct {
	ID                uint           `gorm:"primaryKey" json:"id" csv:"-"`
	Date              string         `gorm:"index:idx_strikes_date" json:"date" csv:"date"`
	Time              *string        `json:"time" csv:"time"`
	TimeOfDay         string         `json:"time_of_day" csv:"time_of_day"`
	FlightPhase       *string        `json:"flight_phase" csv:"flight_phase"`
	PerimeterLocation *string        `json:"perimeter_location" csv:"perimeter_location"`
	Category          *string        `json:"category" csv:"category"`
	Remark            *string        `json:"remark" csv:"remark"`
	Airline           *string        `json:"airline" csv:"airline"`
	RunwayUse         *string        `json:"runway_use" csv:"runway_use"`
	Component         *string        `json:"component" csv:"component"`
	Impact            *string        `json:"impact" csv:"impact"`
	DamageCondition   *string        `json:"damage_condition" csv:"damage_condition"`
	CorrectiveAction  *string        `json:"corrective_action" csv:"corrective_action"`
	InfoSource        *string        `json:"info_source" csv:"info_source"`
	Description       *string        `gorm:"type:text" json:"description" csv:"description"`
	Documentation     *string        `gorm:"type:text" json:"documentation" csv:"-"`
	ActType           *string        `json:"act_type" csv:"act_type"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-" csv:"-"`
}

// BirdSpecies represents one sighting/count observation at a monitoring point.
type BirdSpecies struct {
	ID             uint           `gorm:"primaryKey" json:"id" csv:"-"`
	Longitude      string         `json:"longitude" csv:"longitude"`
	Latitude       string         `json:"latitude" csv:"latitude"`
	LocationName   *string        `json:"location_name" csv:"location_name"`
	Point          *string        `gorm:"index:idx_species_point" json:"point" csv:"point"`
	Date           string         `gorm:"index:idx_species_date" json:"date" csv:"date"`
	Time           *string        `json:"time" csv:"time"`
	TimeOfDay      string         `json:"time_of_day" csv:"time_of_day"`
	Weather        *string        `json:"weather" csv:"weather"`
	CommonName     string         `gorm:"index:idx_species_comname" json:"common_name" csv:"common_name"`
	ScientificName string         `gorm:"index:idx_species_sciname" json:"scientific_name" csv:"scientific_name"`
	BirdCount      int            `json:"bird_count" csv:"bird_count"`
	Notes          *string        `gorm:"type:text" json:"notes" csv:"notes"`
	Documentation  *string        `gorm:"type:text" json:"documentation" csv:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-" csv:"-"`
}

// ModelRecord is a derived training row. At most one row exists per
// (date, point, phase, strike) tuple; the deriver checks before inserting.
type ModelRecord struct {
	ID           uint    `gorm:"primaryKey" json:"id" csv:"-"`
	Date         string  `gorm:"index:idx_model_key" json:"date" csv:"date"`
	Time         string  `json:"time" csv:"time"`
	TimeOfDay    string  `json:"time_of_day" csv:"time_of_day"`
	Weather      *string `json:"weather" csv:"weather"`
	AvgBirdCount *int    `json:"avg_bird_count" csv:"avg_bird_count"`
	Point        int     `gorm:"index:idx_model_key" json:"point" csv:"point"`
	FlightPhase  string  `gorm:"index:idx_model_key" json:"flight_phase" csv:"flight_phase"`
	Strike       string  `gorm:"index:idx_model_key;type:varchar(1)" json:"strike" csv:"strike"`
}

// TrafficRef is the slim projection the renumbering job works on.
type TrafficRef struct {
	ID    uint
	Bulan *string
	Tahun *string
}

// SequenceAssignment is one row's new sequence number.
type SequenceAssignment struct {
	ID uint
	No int
}
