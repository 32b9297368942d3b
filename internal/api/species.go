// species.go: bird-species observation endpoints.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/modeling"
)

func (c *Controller) initSpeciesRoutes() {
	c.Group.POST("/species", c.CreateSpecies)
	c.Group.GET("/species", c.GetSpeciesList)
	c.Group.GET("/species/:id", c.GetSpeciesByID)
	c.Group.DELETE("/species/:id", c.DeleteSpecies)
	c.Group.POST("/species/:id/restore", c.RestoreSpecies)
}

// SpeciesRequest is the create payload for a species observation.
type SpeciesRequest struct {
	Longitude      string  `json:"longitude"`
	Latitude       string  `json:"latitude"`
	LocationName   *string `json:"location_name"`
	Point          *string `json:"point"`
	Date           string  `json:"date"`
	Time           *string `json:"time"`
	Weather        *string `json:"weather"`
	CommonName     string  `json:"common_name"`
	ScientificName string  `json:"scientific_name"`
	BirdCount      int     `json:"bird_count"`
	Notes          *string `json:"notes"`
	Documentation  *string `json:"documentation"`
}

// CreateSpecies stores a new observation. The common name is title-cased and
// the scientific name sentence-cased, so the averaging queries and exports see
// one spelling per species.
func (c *Controller) CreateSpecies(ctx echo.Context) error {
	var req SpeciesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
	}
	if req.Date == "" {
		return c.HandleError(ctx, nil, "date is required", http.StatusBadRequest)
	}

	timeValue := ""
	if req.Time != nil {
		timeValue = *req.Time
	}
	species := &datastore.BirdSpecies{
		Longitude:      req.Longitude,
		Latitude:       req.Latitude,
		LocationName:   req.LocationName,
		Point:          req.Point,
		Date:           req.Date,
		Time:           req.Time,
		TimeOfDay:      modeling.BucketForTimeString(timeValue, c.Settings.Modeling.DefaultHour),
		Weather:        req.Weather,
		CommonName:     titleCase(req.CommonName),
		ScientificName: sentenceCase(req.ScientificName),
		BirdCount:      req.BirdCount,
		Notes:          req.Notes,
		Documentation:  req.Documentation,
	}

	if err := c.DS.SaveSpecies(species); err != nil {
		return c.HandleError(ctx, err, "failed to save bird species observation", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusCreated, map[string]any{"success": true, "data": species})
}

// GetSpeciesList handles the paginated, searchable observation list.
func (c *Controller) GetSpeciesList(ctx echo.Context) error {
	query, page, limit := c.incidentQuery(ctx)
	observations, total, err := c.DS.SearchSpecies(query)
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch bird species observations", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, IncidentListResponse{
		Success:    true,
		Data:       observations,
		Pagination: paginationFor(page, limit, total),
	})
}

// GetSpeciesByID returns one observation by id.
func (c *Controller) GetSpeciesByID(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	species, err := c.DS.GetSpecies(uint(id))
	if err != nil {
		return c.HandleError(ctx, err, "bird species observation not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true, "data": species})
}

// DeleteSpecies soft-deletes an observation; it remains restorable.
func (c *Controller) DeleteSpecies(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	if err := c.DS.DeleteSpecies(uint(id)); err != nil {
		return c.HandleError(ctx, err, "failed to delete bird species observation", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// RestoreSpecies clears the soft-delete timestamp.
func (c *Controller) RestoreSpecies(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	if err := c.DS.RestoreSpecies(uint(id)); err != nil {
		return c.HandleError(ctx, err, "failed to restore bird species observation", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// titleCase title-cases a common name. The caser is built per call: a
// cases.Caser carries transform state and must not be shared across requests.
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// sentenceCase capitalizes the first word and lowers the rest, the convention
// for binomial scientific names.
func sentenceCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
