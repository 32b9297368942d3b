// export.go: CSV export endpoints. Encoding goes through csvutil on top of
// encoding/csv, which applies RFC-4180 quoting (quote when a value contains a
// comma, quote or newline; double embedded quotes).
package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/labstack/echo/v4"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

func (c *Controller) initExportRoutes() {
	c.Group.GET("/traffic-flights/export", c.ExportTrafficFlights)
	c.Group.GET("/strikes/export", c.ExportStrikes)
	c.Group.GET("/species/export", c.ExportSpecies)
}

// ExportTrafficFlights streams the whole traffic table as CSV.
func (c *Controller) ExportTrafficFlights(ctx echo.Context) error {
	rows, err := c.DS.GetAllTrafficFlights()
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch traffic flights", http.StatusInternalServerError)
	}
	return c.writeCSV(ctx, "traffic_flight", &datastore.TrafficFlight{}, rows)
}

// ExportStrikes streams the live strike records as CSV.
func (c *Controller) ExportStrikes(ctx echo.Context) error {
	strikes, err := c.DS.GetAllStrikes()
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch bird strikes", http.StatusInternalServerError)
	}
	return c.writeCSV(ctx, "bird_strike", &datastore.BirdStrike{}, strikes)
}

// ExportSpecies streams the live observations as CSV.
func (c *Controller) ExportSpecies(ctx echo.Context) error {
	observations, err := c.DS.GetAllSpecies()
	if err != nil {
		return c.HandleError(ctx, err, "failed to fetch bird species observations", http.StatusInternalServerError)
	}
	return c.writeCSV(ctx, "bird_species", &datastore.BirdSpecies{}, observations)
}

// writeCSV encodes rows and sends them as a timestamped attachment. The header
// is written from the model type first, so exporting an empty table still
// yields a valid CSV with column names.
func (c *Controller) writeCSV(ctx echo.Context, name string, model, rows any) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	encoder := csvutil.NewEncoder(writer)
	if err := encoder.EncodeHeader(model); err != nil {
		return c.HandleError(ctx, err, "failed to encode CSV header", http.StatusInternalServerError)
	}
	if err := encoder.Encode(rows); err != nil {
		return c.HandleError(ctx, err, "failed to encode CSV", http.StatusInternalServerError)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.HandleError(ctx, err, "failed to write CSV", http.StatusInternalServerError)
	}

	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
