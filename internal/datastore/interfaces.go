// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and defines the
// operations the pipeline and the API need from it.
type Interface interface {
	Open() error
	Close() error

	// traffic flights
	CountTrafficPartition(bulan, tahun string) (int64, error)
	GetTrafficPartition(bulan, tahun string) ([]TrafficFlight, error)
	DeleteTrafficPartition(bulan, tahun string) (int64, error)
	InsertTrafficFlights(rows []TrafficFlight) error
	GetTrafficRefs() ([]TrafficRef, error)
	ApplySequenceAssignments(assignments []SequenceAssignment, batchSize int) error
	SearchTrafficFlights(q *TrafficQuery) ([]TrafficFlight, int64, error)
	TrafficFilterValues() (months, years []string, err error)
	GetAllTrafficFlights() ([]TrafficFlight, error)
	TrafficForDerivation() ([]TrafficFlight, error)

	// bird strikes
	SaveStrike(strike *BirdStrike) error
	GetStrike(id uint) (BirdStrike, error)
	SearchStrikes(q *IncidentQuery) ([]BirdStrike, int64, error)
	DeleteStrike(id uint) error
	RestoreStrike(id uint) error
	StrikesForDerivation(since, remarkMarker string, phases []string) ([]BirdStrike, error)
	GetAllStrikes() ([]BirdStrike, error)

	// bird species
	SaveSpecies(species *BirdSpecies) error
	GetSpecies(id uint) (BirdSpecies, error)
	SearchSpecies(q *IncidentQuery) ([]BirdSpecies, int64, error)
	DeleteSpecies(id uint) error
	RestoreSpecies(id uint) error
	AverageBirdCount(pointVariants []string, untilDate string) (*int, error)
	GetAllSpecies() ([]BirdSpecies, error)

	// model rows
	ModelRowExists(date string, point int, phase, strike string) (bool, error)
	ModelRowExistsAt(date, timeValue, phase, strike string) (bool, error)
	InsertModelRow(row *ModelRecord) error
	SearchModelRows(q *ModelQuery) ([]ModelRecord, error)
	DeleteModelRows(f *ModelDeleteFilter) (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		return nil
	}
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
