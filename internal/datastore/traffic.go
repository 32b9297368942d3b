// traffic.go: traffic-flight operations. The (bulan, tahun) partition filters
// are padding-tolerant: "3" and "03" address the same partition.
package datastore

import (
	"fmt"

	"gorm.io/gorm"
)

// trafficSearchColumns are the text columns the list search matches against.
var trafficSearchColumns = []string{
	"act_type", "reg_no", "opr", "flight_number_origin", "flight_number_dest",
	"org", "des", "runway", "f_stat",
}

// trafficSortColumns maps the sort keys the API accepts to real columns.
// Anything else falls back to the sequence number.
var trafficSortColumns = map[string]string{
	"no":       "no",
	"act_type": "act_type",
	"reg_no":   "reg_no",
	"opr":      "opr",
	"ata":      "ata",
	"atd":      "atd",
	"bulan":    "bulan",
	"tahun":    "tahun",
}

func partitionFilter(bulan, tahun string) *Filter {
	f := &Filter{}
	f.In("bulan", MonthVariants(bulan))
	f.Eq("tahun", tahun)
	return f
}

// CountTrafficPartition returns the number of stored rows in one partition.
func (ds *DataStore) CountTrafficPartition(bulan, tahun string) (int64, error) {
	var count int64
	query := partitionFilter(bulan, tahun).Apply(ds.DB.Model(&TrafficFlight{}))
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting partition %s/%s: %w", bulan, tahun, err)
	}
	return count, nil
}

// GetTrafficPartition returns every stored row in one partition.
func (ds *DataStore) GetTrafficPartition(bulan, tahun string) ([]TrafficFlight, error) {
	var rows []TrafficFlight
	query := partitionFilter(bulan, tahun).Apply(ds.DB.Model(&TrafficFlight{}))
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching partition %s/%s: %w", bulan, tahun, err)
	}
	return rows, nil
}

// DeleteTrafficPartition hard-deletes every stored row in one partition and
// returns the number of rows removed.
func (ds *DataStore) DeleteTrafficPartition(bulan, tahun string) (int64, error) {
	query := partitionFilter(bulan, tahun).Apply(ds.DB.Model(&TrafficFlight{}))
	result := query.Delete(&TrafficFlight{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting partition %s/%s: %w", bulan, tahun, result.Error)
	}
	return result.RowsAffected, nil
}

// InsertTrafficFlights bulk-inserts rows in one transaction.
func (ds *DataStore) InsertTrafficFlights(rows []TrafficFlight) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ds.DB.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("inserting %d traffic flights: %w", len(rows), err)
	}
	return nil
}

// GetTrafficRefs returns the (id, bulan, tahun) projection of every stored
// traffic row, for the renumbering job.
func (ds *DataStore) GetTrafficRefs() ([]TrafficRef, error) {
	var refs []TrafficRef
	err := ds.DB.Model(&TrafficFlight{}).
		Select("id", "bulan", "tahun").
		Find(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("fetching traffic refs: %w", err)
	}
	return refs, nil
}

// ApplySequenceAssignments rewrites sequence numbers in fixed-size batches.
// Each batch runs as one transaction, so a crash mid-renumber never leaves a
// half-applied batch.
func (ds *DataStore) ApplySequenceAssignments(assignments []SequenceAssignment, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 200
	}
	for start := 0; start < len(assignments); start += batchSize {
		end := start + batchSize
		if end > len(assignments) {
			end = len(assignments)
		}
		batch := assignments[start:end]
		err := ds.DB.Transaction(func(tx *gorm.DB) error {
			for _, a := range batch {
				if err := tx.Model(&TrafficFlight{}).
					Where("id = ?", a.ID).
					Update("no", a.No).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("applying sequence batch %d..%d: %w", start, end, err)
		}
	}
	return nil
}

// SearchTrafficFlights returns one page of traffic rows plus the unpaginated
// total matching the query.
func (ds *DataStore) SearchTrafficFlights(q *TrafficQuery) ([]TrafficFlight, int64, error) {
	filter := &Filter{}
	if q.Search != "" {
		filter.AnyLike(trafficSearchColumns, q.Search)
	}
	if q.Bulan != "" {
		filter.In("bulan", MonthVariants(q.Bulan))
	}
	if q.Tahun != "" {
		filter.Eq("tahun", q.Tahun)
	}

	query := filter.Apply(ds.DB.Model(&TrafficFlight{}))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting traffic flights: %w", err)
	}

	column, ok := trafficSortColumns[q.SortBy]
	if !ok {
		column = "no"
	}
	order := column + " ASC"
	if q.SortDesc {
		order = column + " DESC"
	}
	query = query.Order(order)

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
		if q.Page > 1 {
			query = query.Offset((q.Page - 1) * q.Limit)
		}
	}

	var rows []TrafficFlight
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching traffic flights: %w", err)
	}
	return rows, total, nil
}

// TrafficFilterValues returns the distinct months and years present in the
// traffic table, for the list endpoint's filter dropdowns.
func (ds *DataStore) TrafficFilterValues() (months, years []string, err error) {
	err = ds.DB.Model(&TrafficFlight{}).
		Distinct("bulan").
		Where("bulan IS NOT NULL").
		Order("bulan ASC").
		Pluck("bulan", &months).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching distinct months: %w", err)
	}
	err = ds.DB.Model(&TrafficFlight{}).
		Distinct("tahun").
		Where("tahun IS NOT NULL").
		Order("tahun ASC").
		Pluck("tahun", &years).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching distinct years: %w", err)
	}
	return months, years, nil
}

// GetAllTrafficFlights returns every stored traffic row in sequence order.
func (ds *DataStore) GetAllTrafficFlights() ([]TrafficFlight, error) {
	var rows []TrafficFlight
	if err := ds.DB.Order("no ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching all traffic flights: %w", err)
	}
	return rows, nil
}

// TrafficForDerivation returns the rows the modeling deriver considers: both
// partition fields must be present.
func (ds *DataStore) TrafficForDerivation() ([]TrafficFlight, error) {
	var rows []TrafficFlight
	err := ds.DB.
		Where("bulan IS NOT NULL AND tahun IS NOT NULL").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetching traffic flights for derivation: %w", err)
	}
	return rows, nil
}
