// strikes.go: bird-strike incident operations, including the selection query
// the modeling deriver runs.
package datastore

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var strikeSearchColumns = []string{
	"category", "remark", "airline", "flight_phase", "perimeter_location",
	"component", "act_type", "description",
}

// SaveStrike inserts a new strike record.
func (ds *DataStore) SaveStrike(strike *BirdStrike) error {
	if err := ds.DB.Create(strike).Error; err != nil {
		return fmt.Errorf("saving bird strike: %w", err)
	}
	return nil
}

// GetStrike retrieves a strike by id. Soft-deleted rows are not returned.
func (ds *DataStore) GetStrike(id uint) (BirdStrike, error) {
	var strike BirdStrike
	if err := ds.DB.First(&strike, id).Error; err != nil {
		return BirdStrike{}, fmt.Errorf("getting bird strike %d: %w", id, err)
	}
	return strike, nil
}

// SearchStrikes returns one page of strike records plus the total match count.
func (ds *DataStore) SearchStrikes(q *IncidentQuery) ([]BirdStrike, int64, error) {
	filter := &Filter{}
	if q.Search != "" {
		filter.AnyLike(strikeSearchColumns, q.Search)
	}
	query := filter.Apply(ds.DB.Model(&BirdStrike{}))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting bird strikes: %w", err)
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

	var strikes []BirdStrike
	if err := query.Find(&strikes).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching bird strikes: %w", err)
	}
	return strikes, total, nil
}

// DeleteStrike soft-deletes a strike record.
func (ds *DataStore) DeleteStrike(id uint) error {
	result := ds.DB.Delete(&BirdStrike{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting bird strike %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RestoreStrike clears the soft-delete timestamp of a strike record.
func (ds *DataStore) RestoreStrike(id uint) error {
	result := ds.DB.Unscoped().Model(&BirdStrike{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return fmt.Errorf("restoring bird strike %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StrikesForDerivation selects the strike records the modeling deriver
// considers: dated on or after the epoch floor, categorized as a bird strike,
// carrying the confirmation marker in the remark, during landing or take-off.
func (ds *DataStore) StrikesForDerivation(since, remarkMarker string, phases []string) ([]BirdStrike, error) {
	filter := &Filter{}
	filter.Range("date", since, "")
	filter.Like("category", "bird strike")
	filter.Like("remark", remarkMarker)

	lowered := make([]string, 0, len(phases))
	for _, phase := range phases {
		lowered = append(lowered, strings.ToLower(phase))
	}

	var strikes []BirdStrike
	query := filter.Apply(ds.DB.Model(&BirdStrike{})).
		Where("LOWER(flight_phase) IN ?", lowered).
		Order("date ASC, id ASC")
	if err := query.Find(&strikes).Error; err != nil {
		return nil, fmt.Errorf("fetching strikes for derivation: %w", err)
	}
	return strikes, nil
}

// GetAllStrikes returns every live strike record, for CSV export.
func (ds *DataStore) GetAllStrikes() ([]BirdStrike, error) {
	var strikes []BirdStrike
	if err := ds.DB.Order("date ASC, id ASC").Find(&strikes).Error; err != nil {
		return nil, fmt.Errorf("fetching all bird strikes: %w", err)
	}
	return strikes, nil
}
