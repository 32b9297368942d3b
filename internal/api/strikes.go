// strikes.go: bird-strike incident endpoints.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/modeling"
)

func (c *Controller) initStrikeRoutes() {
	c.Group.POST("/strikes", c.CreateStrike)
	c.Group.GET("/strikes", c.GetStrikes)
	c.Group.GET("/strikes/:id", c.GetStrike)
	c.Group.DELETE("/strikes/:id", c.DeleteStrike)
	c.Group.POST("/strikes/:id/restore", c.RestoreStrike)
}

// StrikeRequest is the create payload for a strike record.
type StrikeRequest struct {
	Date              string  `json:"date"`
	Time              *string `json:"time"`
	FlightPhase       *string `json:"flight_phase"`
	PerimeterLocation *string `json:"perimeter_location"`
	Category          *string `json:"category"`
	Remark            *string `json:"remark"`
	Airline           *string `json:"airline"`
	RunwayUse         *string `json:"runway_use"`
	Component         *string `json:"component"`
	Impact            *string `json:"impact"`
	DamageCondition   *string `json:"damage_condition"`
	CorrectiveAction  *string `json:"corrective_action"`
	InfoSource        *string `json:"info_source"`
	Description       *string `json:"description"`
	Documentation     *string `json:"documentation"`
	ActType           *string `json:"act_type"`
}

// CreateStrike stores a new strike record. The time-of-day bucket is derived
// from the reported time.
func (c *Controller) CreateStrike(ctx echo.Context) error {
	var req StrikeRequest
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
	strike := &datastore.BirdStrike{
		Date:              req.Date,
		Time:              req.Time,
		TimeOfDay:         modeling.BucketForTimeString(timeValue, c.Settings.Modeling.DefaultHour),
		FlightPhase:       req.FlightPhase,
		PerimeterLocation: req.PerimeterLocation,
		Category:          req.Category,
		Remark:            req.Remark,
		Airline:           req.Airline,
		RunwayUse:         req.RunwayUse,
		Component:         req.Component,
		Impact:            req.Impact,
		DamageCondition:   req.DamageCondition,
		CorrectiveAction:  req.CorrectiveAction,
		InfoSource:        req.InfoSource,
		Description:       req.Description,
		Documentation:     req.Documentation,
		ActType:           req.ActType,
	}

	if err := c.DS.SaveStrike(strike); err != nil {
		return c.HandleError(ctx, err, "failed to save bird strike", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusCreated, map[string]any{"success": true, "data": strike})
}

// IncidentListResponse is the list envelope shared by the strike and species
// endpoints.
type IncidentListResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// GetStrikes handles the paginated, searchable strike list.
func (c *Controller) GetStrikes(ctx echo.Context) error {
	query, page, limit := c.incidentQuery(ctx)
	strikes, total, err := c.DS.SearchStrikes(query)
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch bird strikes", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, IncidentListResponse{
		Success:    true,
		Data:       strikes,
		Pagination: paginationFor(page, limit, total),
	})
}

// GetStrike returns one strike record by id.
func (c *Controller) GetStrike(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	strike, err := c.DS.GetStrike(uint(id))
	if err != nil {
		return c.HandleError(ctx, err, "bird strike not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true, "data": strike})
}

// DeleteStrike soft-deletes a strike record; it remains restorable.
func (c *Controller) DeleteStrike(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	if err := c.DS.DeleteStrike(uint(id)); err != nil {
		return c.HandleError(ctx, err, "failed to delete bird strike", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// RestoreStrike clears the soft-delete timestamp.
func (c *Controller) RestoreStrike(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "invalid id", http.StatusBadRequest)
	}
	if err := c.DS.RestoreStrike(uint(id)); err != nil {
		return c.HandleError(ctx, err, "failed to restore bird strike", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// incidentQuery parses the shared list parameters.
func (c *Controller) incidentQuery(ctx echo.Context) (query *datastore.IncidentQuery, page, limit int) {
	page, _ = strconv.Atoi(ctx.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(ctx.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultPageLimit
	} else if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return &datastore.IncidentQuery{
		Search:   ctx.QueryParam("search"),
		SortDesc: strings.EqualFold(ctx.QueryParam("sortOrder"), "desc"),
		Page:     page,
		Limit:    limit,
	}, page, limit
}

func paginationFor(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
