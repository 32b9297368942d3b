// species.go: bird-species observation operations, including the point-average
// query the modeling deriver uses.
package datastore

import (
	"fmt"
	"math"

	"gorm.io/gorm"
)

var speciesSearchColumns = []string{
	"location_name", "point", "weather", "common_name", "scientific_name", "notes",
}

// SaveSpecies inserts a new species observation.
func (ds *DataStore) SaveSpecies(species *BirdSpecies) error {
	if err := ds.DB.Create(species).Error; err != nil {
		return fmt.Errorf("saving bird species observation: %w", err)
	}
	return nil
}

// GetSpecies retrieves an observation by id. Soft-deleted rows are not returned.
func (ds *DataStore) GetSpecies(id uint) (BirdSpecies, error) {
	var species BirdSpecies
	if err := ds.DB.First(&species, id).Error; err != nil {
		return BirdSpecies{}, fmt.Errorf("getting bird species observation %d: %w", id, err)
	}
	return species, nil
}

// SearchSpecies returns one page of observations plus the total match count.
func (ds *DataStore) SearchSpecies(q *IncidentQuery) ([]BirdSpecies, int64, error) {
	filter := &Filter{}
	if q.Search != "" {
		filter.AnyLike(speciesSearchColumns, q.Search)
	}
	query := filter.Apply(ds.DB.Model(&BirdSpecies{}))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting bird species observations: %w", err)
	}

	order := "date ASC, id ASC"
	if q.SortDesc {
		order = "date DESC, id DESC"
	}
	query = query.Order(order)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
		if q.Page > 1 {
			query = query.Offset((q.Page - 1) * q.Limit)
		}
	}

	var observations []BirdSpecies
	if err := query.Find(&observations).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching bird species observations: %w", err)
	}
	return observations, total, nil
}

// DeleteSpecies soft-deletes an observation.
func (ds *DataStore) DeleteSpecies(id uint) error {
	result := ds.DB.Delete(&BirdSpecies{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting bird species observation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RestoreSpecies clears the soft-delete timestamp of an observation.
func (ds *DataStore) RestoreSpecies(id uint) error {
	result := ds.DB.Unscoped().Model(&BirdSpecies{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return fmt.Errorf("restoring bird species observation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageBirdCount computes the rounded average bird count observed at a point
// up to and including untilDate. The point column stores the same number in
// several formats, so the caller passes every variant to match. Returns nil
// when no observation matches.
func (ds *DataStore) AverageBirdCount(pointVariants []string, untilDate string) (*int, error) {
	var result struct {
		Avg *float64
		N   int64
	}
	filter := &Filter{}
	filter.In("point", pointVariants)
	filter.Range("date", "", untilDate)

	query := filter.Apply(ds.DB.Model(&BirdSpecies{})).
		Select("AVG(bird_count) AS avg, COUNT(*) AS n")
	if err := query.Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("averaging bird count: %w", err)
	}
	if result.N == 0 || result.Avg == nil {
		return nil, nil
	}
	rounded := int(math.Round(*result.Avg))
	return &rounded, nil
}

// GetAllSpecies returns every live observation, for CSV export.
func (ds *DataStore) GetAllSpecies() ([]BirdSpecies, error) {
	var observations []BirdSpecies
	if err := ds.DB.Order("date ASC, id ASC").Find(&observations).Error; err != nil {
		return nil, fmt.Errorf("fetching all bird species observations: %w", err)
	}
	return observations, nil
}
