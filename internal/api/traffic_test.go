package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/ingest"
)

func importCSV(rows ...string) string {
	header := "no," + strings.Join(ingest.RequiredColumns, ",")
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

const sampleRow = "1,B738,PK-AAA,OPR,FN1,FN2,14/06:10,06:15,07:40,14/07:45,95 min,CGK,DPS,D,25L,1,0,S,6,2024"

func TestImportTrafficFlightsSuccess(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	mockDS.On("CountTrafficPartition", "06", "2024").Return(int64(0), nil)
	mockDS.On("GetTrafficPartition", "06", "2024").Return([]datastore.TrafficFlight{}, nil)
	mockDS.On("InsertTrafficFlights", mock.AnythingOfType("[]datastore.TrafficFlight")).Return(nil)
	mockDS.On("GetTrafficRefs").Return([]datastore.TrafficRef{}, nil)
	mockDS.On("ApplySequenceAssignments", mock.Anything, 200).Return(nil)

	body, contentType := multipartCSV(t, importCSV(sampleRow))
	rec := doRequest(e, http.MethodPost, "/api/v2/traffic-flights/import", contentType, body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	assert.Zero(t, resp.Skipped)
	mockDS.AssertExpectations(t)
}

func TestImportTrafficFlightsMissingFile(t *testing.T) {
	e, _, _ := setupTestEnvironment(t)

	rec := doRequest(e, http.MethodPost, "/api/v2/traffic-flights/import", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.CorrelationID)
}

func TestImportTrafficFlightsBadHeader(t *testing.T) {
	e, _, _ := setupTestEnvironment(t)

	body, contentType := multipartCSV(t, "foo,bar\n1,2\n")
	rec := doRequest(e, http.MethodPost, "/api/v2/traffic-flights/import", contentType, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "missing required columns")
}

func TestImportTrafficFlightsConflict(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	mockDS.On("CountTrafficPartition", "06", "2024").Return(int64(25), nil)

	body, contentType := multipartCSV(t, importCSV(sampleRow))
	rec := doRequest(e, http.MethodPost, "/api/v2/traffic-flights/import", contentType, body)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NeedsConfirm)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "06", resp.Conflicts[0].Bulan)
	assert.Equal(t, "2024", resp.Conflicts[0].Tahun)
	assert.Equal(t, int64(25), resp.Conflicts[0].Existing)

	// nothing may be written on a conflict
	mockDS.AssertNotCalled(t, "InsertTrafficFlights", mock.Anything)
	mockDS.AssertNotCalled(t, "DeleteTrafficPartition", mock.Anything, mock.Anything)
}

func TestImportTrafficFlightsReplace(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	mockDS.On("CountTrafficPartition", "06", "2024").Return(int64(25), nil)
	mockDS.On("DeleteTrafficPartition", "06", "2024").Return(int64(25), nil)
	mockDS.On("GetTrafficPartition", "06", "2024").Return([]datastore.TrafficFlight{}, nil)
	mockDS.On("InsertTrafficFlights", mock.AnythingOfType("[]datastore.TrafficFlight")).Return(nil)
	mockDS.On("GetTrafficRefs").Return([]datastore.TrafficRef{}, nil)
	mockDS.On("ApplySequenceAssignments", mock.Anything, 200).Return(nil)

	body, contentType := multipartCSV(t, importCSV(sampleRow))
	rec := doRequest(e, http.MethodPost, "/api/v2/traffic-flights/import?replace=true", contentType, body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Replaced, 1)
	assert.Equal(t, int64(25), resp.Replaced[0].Deleted)
	mockDS.AssertExpectations(t)
}

func TestGetTrafficFlights(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	bulan := "06"
	rows := []datastore.TrafficFlight{{ID: 1, No: 1, Bulan: &bulan}}
	mockDS.On("SearchTrafficFlights", mock.MatchedBy(func(q *datastore.TrafficQuery) bool {
		return q.Page == 2 && q.Limit == 10 && q.Bulan == "6" && q.SortDesc
	})).Return(rows, int64(35), nil)
	mockDS.On("TrafficFilterValues").Return([]string{"06"}, []string{"2024"}, nil)

	rec := doRequest(e, http.MethodGet,
		"/api/v2/traffic-flights?page=2&limit=10&bulan=6&sortOrder=desc", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TrafficListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(35), resp.Pagination.Total)
	assert.Equal(t, 4, resp.Pagination.Pages)
	assert.Equal(t, []string{"06"}, resp.Filters.Months)
}

func TestGetTrafficFlightsDefaultsAndCaps(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	mockDS.On("SearchTrafficFlights", mock.MatchedBy(func(q *datastore.TrafficQuery) bool {
		return q.Page == 1 && q.Limit == maxPageLimit
	})).Return([]datastore.TrafficFlight{}, int64(0), nil)
	mockDS.On("TrafficFilterValues").Return([]string{}, []string{}, nil)

	rec := doRequest(e, http.MethodGet, "/api/v2/traffic-flights?page=0&limit=99999", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TrafficListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.Pages)
}

func TestGetTrafficFlightsFilterCache(t *testing.T) {
	e, mockDS, _ := setupTestEnvironment(t)

	mockDS.On("SearchTrafficFlights", mock.Anything).Return([]datastore.TrafficFlight{}, int64(0), nil)
	mockDS.On("TrafficFilterValues").Return([]string{"06"}, []string{"2024"}, nil).Once()

	for i := 0; i < 3; i++ {
		rec := doRequest(e, http.MethodGet, "/api/v2/traffic-flights", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// the distinct scan ran once, later requests hit the cache
	mockDS.AssertNumberOfCalls(t, "TrafficFilterValues", 1)
}
