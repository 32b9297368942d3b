// modelrows.go: derived model-row operations.
package datastore

import (
	"fmt"
)

var modelSearchColumns = []string{"date", "time_of_day", "flight_phase"}

// ModelRowExists reports whether a model row with the same
// (date, point, phase, strike) tuple is already stored. Strike-derived rows
// are keyed this way.
func (ds *DataStore) ModelRowExists(date string, point int, phase, strike string) (bool, error) {
	var count int64
	filter := &Filter{}
	filter.Eq("date", date).Eq("point", point).Eq("flight_phase", phase).Eq("strike", strike)
	if err := filter.Apply(ds.DB.Model(&ModelRecord{})).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking model row existence: %w", err)
	}
	return count > 0, nil
}

// ModelRowExistsAt reports whether a model row with the same
// (date, time, phase, strike) tuple is already stored. Traffic-derived rows
// are keyed this way.
func (ds *DataStore) ModelRowExistsAt(date, timeValue, phase, strike string) (bool, error) {
	var count int64
	filter := &Filter{}
	filter.Eq("date", date).Eq("time", timeValue).Eq("flight_phase", phase).Eq("strike", strike)
	if err := filter.Apply(ds.DB.Model(&ModelRecord{})).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking model row existence: %w", err)
	}
	return count > 0, nil
}

// InsertModelRow stores one derived row.
func (ds *DataStore) InsertModelRow(row *ModelRecord) error {
	if err := ds.DB.Create(row).Error; err != nil {
		return fmt.Errorf("inserting model row: %w", err)
	}
	return nil
}

// SearchModelRows returns up to q.Limit rows after the cursor. The caller asks
// for one row more than the page size to detect whether more pages exist.
func (ds *DataStore) SearchModelRows(q *ModelQuery) ([]ModelRecord, error) {
	filter := &Filter{}
	if q.Strike != "" {
		filter.Eq("strike", q.Strike)
	}
	if q.Search != "" {
		filter.AnyLike(modelSearchColumns, q.Search)
	}

	query := filter.Apply(ds.DB.Model(&ModelRecord{}))
	if q.Cursor > 0 {
		if q.SortDesc {
			query = query.Where("id < ?", q.Cursor)
		} else {
			query = query.Where("id > ?", q.Cursor)
		}
	}
	order := "id ASC"
	if q.SortDesc {
		order = "id DESC"
	}
	query = query.Order(order)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []ModelRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching model rows: %w", err)
	}
	return rows, nil
}

// DeleteModelRows bulk-deletes rows matching the filter and returns the count.
func (ds *DataStore) DeleteModelRows(f *ModelDeleteFilter) (int64, error) {
	filter := &Filter{}
	if f.Strike != "" {
		filter.Eq("strike", f.Strike)
	}
	filter.Range("date", f.Since, f.Until)

	result := filter.Apply(ds.DB.Model(&ModelRecord{})).Delete(&ModelRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting model rows: %w", result.Error)
	}
	return result.RowsAffected, nil
}
