// incident_store_test.go: integration tests for the strike, species and
// model-row store operations against an in-memory SQLite database.
package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStrikeSoftDeleteAndRestore(t *testing.T) {
	ds := setupTestDB(t)

	strike := &BirdStrike{Date: "2024-06-10", FlightPhase: sp("Landing")}
	require.NoError(t, ds.SaveStrike(strike))
	require.NotZero(t, strike.ID)

	require.NoError(t, ds.DeleteStrike(strike.ID))

	// gone from normal reads
	_, err := ds.GetStrike(strike.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// but restorable
	require.NoError(t, ds.RestoreStrike(strike.ID))
	restored, err := ds.GetStrike(strike.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", restored.Date)

	// restoring a live row is an error
	assert.ErrorIs(t, ds.RestoreStrike(strike.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, ds.DeleteStrike(9999), gorm.ErrRecordNotFound)
}

func TestStrikesForDerivation(t *testing.T) {
	ds := setupTestDB(t)

	seed := []BirdStrike{
		{Date: "2024-06-10", Category: sp("Bird Strike"), Remark: sp("Confirmed by tower"),
			FlightPhase: sp("Landing"), PerimeterLocation: sp("7")},
		{Date: "2024-06-11", Category: sp("bird strike"), Remark: sp("CONFIRM"),
			FlightPhase: sp("Take-Off"), PerimeterLocation: sp("3")},
		// wrong category
		{Date: "2024-06-12", Category: sp("near miss"), Remark: sp("confirmed"),
			FlightPhase: sp("Landing")},
		// unconfirmed remark
		{Date: "2024-06-13", Category: sp("bird strike"), Remark: sp("pending review"),
			FlightPhase: sp("Landing")},
		// phase outside landing/take-off
		{Date: "2024-06-14", Category: sp("bird strike"), Remark: sp("confirmed"),
			FlightPhase: sp("Taxi")},
		// before the epoch floor
		{Date: "2019-03-01", Category: sp("bird strike"), Remark: sp("confirmed"),
			FlightPhase: sp("Landing")},
	}
	for i := range seed {
		require.NoError(t, ds.SaveStrike(&seed[i]))
	}

	strikes, err := ds.StrikesForDerivation("2020-01-01", "confirm",
		[]string{"landing", "take off", "take-off", "takeoff"})
	require.NoError(t, err)
	require.Len(t, strikes, 2)
	assert.Equal(t, "2024-06-10", strikes[0].Date)
	assert.Equal(t, "2024-06-11", strikes[1].Date)
}

func TestAverageBirdCount(t *testing.T) {
	ds := setupTestDB(t)

	seed := []BirdSpecies{
		{Date: "2024-05-01", Point: sp("7"), CommonName: "Brahminy Kite", BirdCount: 10},
		{Date: "2024-05-02", Point: sp("7.0"), CommonName: "Brahminy Kite", BirdCount: 15},
		{Date: "2024-05-03", Point: sp("7,00"), CommonName: "Cattle Egret", BirdCount: 2},
		// different point
		{Date: "2024-05-04", Point: sp("3"), CommonName: "Cattle Egret", BirdCount: 90},
		// after the cutoff date
		{Date: "2024-07-01", Point: sp("7"), CommonName: "Brahminy Kite", BirdCount: 50},
	}
	for i := range seed {
		require.NoError(t, ds.SaveSpecies(&seed[i]))
	}

	avg, err := ds.AverageBirdCount([]string{"7", "7.0", "7.00", "7,0", "7,00"}, "2024-06-10")
	require.NoError(t, err)
	require.NotNil(t, avg)
	// (10 + 15 + 2) / 3 = 9
	assert.Equal(t, 9, *avg)

	avg, err = ds.AverageBirdCount([]string{"99"}, "2024-06-10")
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestSearchSpecies(t *testing.T) {
	ds := setupTestDB(t)

	seed := []BirdSpecies{
		{Date: "2024-05-01", CommonName: "Brahminy Kite", ScientificName: "Haliastur indus"},
		{Date: "2024-05-02", CommonName: "Cattle Egret", ScientificName: "Bubulcus ibis"},
	}
	for i := range seed {
		require.NoError(t, ds.SaveSpecies(&seed[i]))
	}

	observations, total, err := ds.SearchSpecies(&IncidentQuery{Search: "kite", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, observations, 1)
	assert.Equal(t, "Brahminy Kite", observations[0].CommonName)
}

func TestModelRowExistence(t *testing.T) {
	ds := setupTestDB(t)

	require.NoError(t, ds.InsertModelRow(&ModelRecord{
		Date: "2024-06-10", Time: "06:45", TimeOfDay: "Pagi",
		Point: 7, FlightPhase: "landing", Strike: "1",
	}))

	exists, err := ds.ModelRowExists("2024-06-10", 7, "landing", "1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ds.ModelRowExists("2024-06-10", 7, "take off", "1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = ds.ModelRowExistsAt("2024-06-10", "06:45", "landing", "1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ds.ModelRowExistsAt("2024-06-10", "07:00", "landing", "1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSearchModelRowsCursor(t *testing.T) {
	ds := setupTestDB(t)

	for i := 0; i < 5; i++ {
		strike := "0"
		if i%2 == 0 {
			strike = "1"
		}
		require.NoError(t, ds.InsertModelRow(&ModelRecord{
			Date: "2024-06-10", Time: "06:00", FlightPhase: "landing", Strike: strike,
		}))
	}

	page, err := ds.SearchModelRows(&ModelQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)

	next, err := ds.SearchModelRows(&ModelQuery{Cursor: page[2].ID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Greater(t, next[0].ID, page[2].ID)

	// source filter
	strikes, err := ds.SearchModelRows(&ModelQuery{Strike: "1", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, strikes, 3)
}

func TestDeleteModelRows(t *testing.T) {
	ds := setupTestDB(t)

	dates := []string{"2024-01-05", "2024-02-10", "2024-03-20"}
	for _, date := range dates {
		require.NoError(t, ds.InsertModelRow(&ModelRecord{Date: date, Strike: "0", FlightPhase: "landing"}))
	}
	require.NoError(t, ds.InsertModelRow(&ModelRecord{Date: "2024-02-15", Strike: "1", FlightPhase: "landing"}))

	deleted, err := ds.DeleteModelRows(&ModelDeleteFilter{
		Strike: "0",
		Since:  "2024-02-01",
		Until:  "2024-02-28",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := ds.SearchModelRows(&ModelQuery{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}
