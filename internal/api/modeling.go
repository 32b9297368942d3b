// modeling.go: derivation trigger and model-row read/delete endpoints.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

func (c *Controller) initModelingRoutes() {
	c.Group.POST("/modeling", c.RunDerivation)
	c.Group.GET("/modeling", c.GetModelRows)
	c.Group.DELETE("/modeling", c.DeleteModelRows)
}

// DerivationResponse is the body of a derivation run.
type DerivationResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
	Skipped int  `json:"skipped"`
}

// RunDerivation executes both derivation passes. The job is idempotent, a
// re-run only fills gaps.
func (c *Controller) RunDerivation(ctx echo.Context) error {
	result, err := c.deriver.Run()
	if err != nil {
		return c.HandleError(ctx, err, "derivation failed", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, DerivationResponse{
		Success: true,
		Created: result.Created,
		Skipped: result.Skipped,
	})
}

// PageInfo is the cursor-pagination envelope.
type PageInfo struct {
	Limit      int   `json:"limit"`
	HasMore    bool  `json:"hasMore"`
	NextCursor *uint `json:"nextCursor"`
}

// ModelListResponse is the body of the model-row list endpoint.
type ModelListResponse struct {
	Success  bool                    `json:"success"`
	Data     []datastore.ModelRecord `json:"data"`
	PageInfo PageInfo                `json:"pageInfo"`
}

// GetModelRows handles the cursor-paginated model-row list. The cursor is the
// last-seen row id; one extra row is fetched to detect whether more exist.
func (c *Controller) GetModelRows(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultPageLimit
	} else if limit > maxPageLimit {
		limit = maxPageLimit
	}
	cursor, _ := strconv.ParseUint(ctx.QueryParam("cursor"), 10, 64)

	source := ctx.QueryParam("source")
	if source != "" && source != "0" && source != "1" {
		return c.HandleError(ctx, nil, "source must be \"0\" or \"1\"", http.StatusBadRequest)
	}

	query := &datastore.ModelQuery{
		Strike:   source,
		Search:   ctx.QueryParam("search"),
		Cursor:   uint(cursor),
		Limit:    limit + 1,
		SortDesc: strings.EqualFold(ctx.QueryParam("sortOrder"), "desc"),
	}

	rows, err := c.DS.SearchModelRows(query)
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch model rows", http.StatusInternalServerError)
	}

	pageInfo := PageInfo{Limit: limit}
	if len(rows) > limit {
		rows = rows[:limit]
		pageInfo.HasMore = true
		next := rows[len(rows)-1].ID
		pageInfo.NextCursor = &next
	}

	return ctx.JSON(http.StatusOK, ModelListResponse{
		Success:  true,
		Data:     rows,
		PageInfo: pageInfo,
	})
}

// ModelDeleteResponse is the body of the bulk delete endpoint.
type ModelDeleteResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// DeleteModelRows bulk-deletes model rows by source and inclusive date range.
func (c *Controller) DeleteModelRows(ctx echo.Context) error {
	source := ctx.QueryParam("source")
	if source != "" && source != "0" && source != "1" {
		return c.HandleError(ctx, nil, "source must be \"0\" or \"1\"", http.StatusBadRequest)
	}

	deleted, err := c.DS.DeleteModelRows(&datastore.ModelDeleteFilter{
		Strike: source,
		Since:  ctx.QueryParam("since"),
		Until:  ctx.QueryParam("until"),
	})
	if err != nil {
		return c.HandleError(ctx, err, "failed to delete model rows", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, ModelDeleteResponse{Success: true, Deleted: deleted})
}
