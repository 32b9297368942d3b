package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
)

// slowQueryThreshold marks queries worth flagging in the log. One second
// accommodates the renumbering batch updates on large tables.
const slowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// performAutoMigration runs GORM auto-migration for every table the
// application owns.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(
		&TrafficFlight{},
		&BirdStrike{},
		&BirdSpecies{},
		&ModelRecord{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		logging.ForService("datastore").Debug("database connection established",
			"type", dbType, "connection", connectionInfo)
	}
	return nil
}
