package conf

import (
	"errors"
	"fmt"
	"time"
)

// ValidateSettings checks the loaded settings for configurations that cannot
// possibly work and rejects them before anything is opened.
func ValidateSettings(settings *Settings) error {
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return errors.New("only one of output.sqlite and output.mysql may be enabled")
	}
	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return errors.New("no database output enabled, enable output.sqlite or output.mysql")
	}
	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return errors.New("output.sqlite.path must not be empty")
	}
	if settings.Server.Port == "" {
		return errors.New("server.port must not be empty")
	}
	if settings.Import.RenumberBatch <= 0 {
		return fmt.Errorf("import.renumberbatch must be positive, got %d", settings.Import.RenumberBatch)
	}
	if _, err := time.Parse("2006-01-02", settings.Modeling.Epoch); err != nil {
		return fmt.Errorf("modeling.epoch must be a YYYY-MM-DD date: %w", err)
	}
	if settings.Modeling.DefaultHour < 0 || settings.Modeling.DefaultHour > 23 {
		return fmt.Errorf("modeling.defaulthour must be in 0..23, got %d", settings.Modeling.DefaultHour)
	}
	return nil
}
