// traffic.go: traffic-flight import and list endpoints.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/ingest"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 1000
)

func (c *Controller) initTrafficRoutes() {
	c.Group.POST("/traffic-flights/import", c.ImportTrafficFlights)
	c.Group.GET("/traffic-flights", c.GetTrafficFlights)
}

// ImportResponse is the body of a successful import.
type ImportResponse struct {
	Success  bool                       `json:"success"`
	Message  string                     `json:"message"`
	Count    int                        `json:"count"`
	Skipped  int                        `json:"skipped"`
	Replaced []ingest.ReplacedPartition `json:"replaced,omitempty"`
}

// ConflictResponse asks the caller to confirm a partition replacement.
type ConflictResponse struct {
	Success      bool              `json:"success"`
	NeedsConfirm bool              `json:"needsConfirm"`
	Conflicts    []ingest.Conflict `json:"conflicts"`
}

// ImportTrafficFlights handles the multipart CSV upload. Re-submitting with
// replace=true confirms replacement of conflicting partitions.
func (c *Controller) ImportTrafficFlights(ctx echo.Context) error {
	replace, _ := strconv.ParseBool(ctx.QueryParam("replace"))

	fileHeader, err := ctx.FormFile("csvFile")
	if err != nil {
		return c.HandleError(ctx, err, "missing csvFile form field", http.StatusBadRequest)
	}
	maxBytes := int64(c.Settings.Import.MaxUploadMB) << 20
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return c.HandleError(ctx, nil,
			fmt.Sprintf("file exceeds the %d MB upload limit", c.Settings.Import.MaxUploadMB),
			http.StatusBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.HandleError(ctx, err, "failed to open uploaded file", http.StatusBadRequest)
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return c.HandleError(ctx, err, "failed to read uploaded file", http.StatusBadRequest)
	}

	result, err := c.importer.Import(string(raw), replace)
	if err != nil {
		var conflict *ingest.ConflictError
		switch {
		case errors.As(err, &conflict):
			return ctx.JSON(http.StatusConflict, ConflictResponse{
				NeedsConfirm: true,
				Conflicts:    conflict.Conflicts,
			})
		case ingest.IsValidationError(err):
			return c.HandleError(ctx, err, err.Error(), http.StatusBadRequest)
		default:
			return c.HandleError(ctx, err, "import failed", http.StatusInternalServerError)
		}
	}

	c.filterCache.Flush()

	return ctx.JSON(http.StatusCreated, ImportResponse{
		Success:  true,
		Message:  fmt.Sprintf("imported %d rows", result.Count),
		Count:    result.Count,
		Skipped:  result.Skipped,
		Replaced: result.Replaced,
	})
}

// Pagination is the offset-pagination envelope on list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TrafficFilters lists the distinct partition values for filter dropdowns.
type TrafficFilters struct {
	Months []string `json:"months"`
	Years  []string `json:"years"`
}

// TrafficListResponse is the body of the traffic list endpoint.
type TrafficListResponse struct {
	Success    bool                      `json:"success"`
	Data       []datastore.TrafficFlight `json:"data"`
	Pagination Pagination                `json:"pagination"`
	Filters    TrafficFilters            `json:"filters"`
}

// GetTrafficFlights handles the paginated, searchable traffic list.
func (c *Controller) GetTrafficFlights(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultPageLimit
	} else if limit > maxPageLimit {
		limit = maxPageLimit
	}

	query := &datastore.TrafficQuery{
		Search:   ctx.QueryParam("search"),
		Bulan:    ctx.QueryParam("bulan"),
		Tahun:    ctx.QueryParam("tahun"),
		SortBy:   ctx.QueryParam("sortBy"),
		SortDesc: strings.EqualFold(ctx.QueryParam("sortOrder"), "desc"),
		Page:     page,
		Limit:    limit,
	}

	rows, total, err := c.DS.SearchTrafficFlights(query)
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch traffic flights", http.StatusInternalServerError)
	}

	filters, err := c.trafficFilters()
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch filter values", http.StatusInternalServerError)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	return ctx.JSON(http.StatusOK, TrafficListResponse{
		Success: true,
		Data:    rows,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
		Filters: filters,
	})
}

// trafficFilters returns the distinct month/year lists, cached briefly to
// spare two DISTINCT scans on every list request.
func (c *Controller) trafficFilters() (TrafficFilters, error) {
	const cacheKey = "traffic_filters"
	if cached, ok := c.filterCache.Get(cacheKey); ok {
		return cached.(TrafficFilters), nil
	}
	months, years, err := c.DS.TrafficFilterValues()
	if err != nil {
		return TrafficFilters{}, err
	}
	filters := TrafficFilters{Months: months, Years: years}
	c.filterCache.SetDefault(cacheKey, filters)
	return filters, nil
}
