// Package serve implements the HTTP server subcommand.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mahastuti/Birdstrike-sub000/internal/api"
	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
	"github.com/mahastuti/Birdstrike-sub000/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// Command returns the serve subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServer(settings)
		},
	}
}

// RunServer opens the datastore and serves the API until interrupted.
func RunServer(settings *conf.Settings) error {
	log := logging.Console()

	ds := datastore.New(settings)
	if ds == nil {
		return errors.New("no datastore configured")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Error("closing datastore", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	e := echo.New()
	e.HideBanner = true
	api.New(e, ds, settings, metrics, registry)

	// shut down cleanly on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Error("server shutdown", "error", err)
		}
	}()

	log.Info("starting HTTP server", "port", settings.Server.Port)
	if err := e.Start(":" + settings.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
