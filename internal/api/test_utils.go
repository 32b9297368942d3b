// test_utils.go: shared test utilities for the API handler tests.

package api

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

// MockDataStore implements datastore.Interface for testing. It is shared
// across all API test files.
type MockDataStore struct {
	mock.Mock
}

func (m *MockDataStore) Open() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDataStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDataStore) CountTrafficPartition(bulan, tahun string) (int64, error) {
	args := m.Called(bulan, tahun)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) GetTrafficPartition(bulan, tahun string) ([]datastore.TrafficFlight, error) {
	args := m.Called(bulan, tahun)
	return args.Get(0).([]datastore.TrafficFlight), args.Error(1)
}

func (m *MockDataStore) DeleteTrafficPartition(bulan, tahun string) (int64, error) {
	args := m.Called(bulan, tahun)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) InsertTrafficFlights(rows []datastore.TrafficFlight) error {
	args := m.Called(rows)
	return args.Error(0)
}

func (m *MockDataStore) GetTrafficRefs() ([]datastore.TrafficRef, error) {
	args := m.Called()
	return args.Get(0).([]datastore.TrafficRef), args.Error(1)
}

func (m *MockDataStore) ApplySequenceAssignments(assignments []datastore.SequenceAssignment, batchSize int) error {
	args := m.Called(assignments, batchSize)
	return args.Error(0)
}

func (m *MockDataStore) SearchTrafficFlights(q *datastore.TrafficQuery) ([]datastore.TrafficFlight, int64, error) {
	args := m.Called(q)
	return args.Get(0).([]datastore.TrafficFlight), args.Get(1).(int64), args.Error(2)
}

func (m *MockDataStore) TrafficFilterValues() (months, years []string, err error) {
	args := m.Called()
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *MockDataStore) GetAllTrafficFlights() ([]datastore.TrafficFlight, error) {
	args := m.Called()
	return args.Get(0).([]datastore.TrafficFlight), args.Error(1)
}

func (m *MockDataStore) TrafficForDerivation() ([]datastore.TrafficFlight, error) {
	args := m.Called()
	return args.Get(0).([]datastore.TrafficFlight), args.Error(1)
}

func (m *MockDataStore) SaveStrike(strike *datastore.BirdStrike) error {
	args := m.Called(strike)
	return args.Error(0)
}

func (m *MockDataStore) GetStrike(id uint) (datastore.BirdStrike, error) {
	args := m.Called(id)
	return args.Get(0).(datastore.BirdStrike), args.Error(1)
}

func (m *MockDataStore) SearchStrikes(q *datastore.IncidentQuery) ([]datastore.BirdStrike, int64, error) {
	args := m.Called(q)
	return args.Get(0).([]datastore.BirdStrike), args.Get(1).(int64), args.Error(2)
}

func (m *MockDataStore) DeleteStrike(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataStore) RestoreStrike(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataStore) StrikesForDerivation(since, remarkMarker string, phases []string) ([]datastore.BirdStrike, error) {
	args := m.Called(since, remarkMarker, phases)
	return args.Get(0).([]datastore.BirdStrike), args.Error(1)
}

func (m *MockDataStore) GetAllStrikes() ([]datastore.BirdStrike, error) {
	args := m.Called()
	return args.Get(0).([]datastore.BirdStrike), args.Error(1)
}

func (m *MockDataStore) SaveSpecies(species *datastore.BirdSpecies) error {
	args := m.Called(species)
	return args.Error(0)
}

func (m *MockDataStore) GetSpecies(id uint) (datastore.BirdSpecies, error) {
	args := m.Called(id)
	return args.Get(0).(datastore.BirdSpecies), args.Error(1)
}

func (m *MockDataStore) SearchSpecies(q *datastore.IncidentQuery) ([]datastore.BirdSpecies, int64, error) {
	args := m.Called(q)
	return args.Get(0).([]datastore.BirdSpecies), args.Get(1).(int64), args.Error(2)
}

func (m *MockDataStore) DeleteSpecies(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataStore) RestoreSpecies(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataStore) AverageBirdCount(pointVariants []string, untilDate string) (*int, error) {
	args := m.Called(pointVariants, untilDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockDataStore) GetAllSpecies() ([]datastore.BirdSpecies, error) {
	args := m.Called()
	return args.Get(0).([]datastore.BirdSpecies), args.Error(1)
}

func (m *MockDataStore) ModelRowExists(date string, point int, phase, strike string) (bool, error) {
	args := m.Called(date, point, phase, strike)
	return args.Bool(0), args.Error(1)
}

func (m *MockDataStore) ModelRowExistsAt(date, timeValue, phase, strike string) (bool, error) {
	args := m.Called(date, timeValue, phase, strike)
	return args.Bool(0), args.Error(1)
}

func (m *MockDataStore) InsertModelRow(row *datastore.ModelRecord) error {
	args := m.Called(row)
	return args.Error(0)
}

func (m *MockDataStore) SearchModelRows(q *datastore.ModelQuery) ([]datastore.ModelRecord, error) {
	args := m.Called(q)
	return args.Get(0).([]datastore.ModelRecord), args.Error(1)
}

func (m *MockDataStore) DeleteModelRows(f *datastore.ModelDeleteFilter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

// setupTestEnvironment builds an echo instance, a mock datastore and a fully
// routed controller for handler tests.
func setupTestEnvironment(t *testing.T) (*echo.Echo, *MockDataStore, *Controller) {
	t.Helper()

	e := echo.New()
	mockDS := new(MockDataStore)

	settings := &conf.Settings{
		Server: conf.ServerSettings{Port: "8080"},
		Import: conf.ImportSettings{
			MaxUploadMB:   10,
			RenumberBatch: 200,
		},
		Modeling: conf.ModelingSettings{
			Epoch:        "2020-01-01",
			RemarkMarker: "confirm",
			TrafficPoint: 0,
			DefaultHour:  12,
		},
	}

	controller := New(e, mockDS, settings, nil, nil)
	return e, mockDS, controller
}

// multipartCSV builds a multipart request body carrying one csvFile part.
func multipartCSV(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("csvFile", "upload.csv")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// doRequest runs one request through the echo router and captures the result.
func doRequest(e *echo.Echo, method, target, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
