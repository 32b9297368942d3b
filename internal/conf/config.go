// config.go: defines the settings struct for the strikedash backend and the
// functions that load it from file, environment and .env overrides.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LogSettings controls the rotated JSON log file.
type LogSettings struct {
	Enabled bool   // true to write structured logs to a file
	Path    string // log file path
	MaxSize int    // max size in megabytes before rotation
	MaxAge  int    // max age in days before removal
	Backups int    // number of rotated files to keep
}

// MainSettings contains application-wide settings.
type MainSettings struct {
	Name  string      // node name, used in log identification
	Debug bool        // true to enable debug logging
	Log   LogSettings // log file settings
}

// ServerSettings contains HTTP server settings.
type ServerSettings struct {
	Port  string // port to listen on
	Debug bool   // true to enable request debug logging
}

// SQLiteSettings contains SQLite output settings.
type SQLiteSettings struct {
	Enabled bool
	Path    string
}

// MySQLSettings contains MySQL output settings.
type MySQLSettings struct {
	Enabled  bool
	Username string
	Password string
	Database string
	Host     string
	Port     string
}

// OutputSettings selects and configures the persistent store.
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// ImportSettings controls the traffic-flight CSV import pipeline.
type ImportSettings struct {
	MaxUploadMB   int // upload size cap for the multipart CSV file
	RenumberBatch int // rows per renumbering transaction
}

// ModelingSettings controls the modeling derivation job.
type ModelingSettings struct {
	Epoch        string // earliest strike date considered, YYYY-MM-DD
	RemarkMarker string // substring a strike remark must contain (case-insensitive)
	TrafficPoint int    // placeholder point id for traffic-derived rows
	DefaultHour  int    // hour assumed when a strike has no recorded time
}

// Settings is the root configuration tree.
type Settings struct {
	Main     MainSettings
	Server   ServerSettings
	Output   OutputSettings
	Import   ImportSettings
	Modeling ModelingSettings
}

// Load reads the configuration from the config file, environment variables and
// an optional .env file, and returns the populated settings.
func Load() (*Settings, error) {
	// .env is optional, it only seeds the process environment for the viper
	// bindings below
	_ = godotenv.Load()

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with defaults, config file paths and env bindings.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("STRIKEDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Defaults and environment are enough to run
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the paths where a config file is searched,
// in priority order: current directory, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user config directory: %w", err)
	}
	return []string{
		".",
		filepath.Join(configDir, "strikedash"),
	}, nil
}
