package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Server: ServerSettings{Port: "8080"},
		Output: OutputSettings{
			SQLite: SQLiteSettings{Enabled: true, Path: "test.db"},
		},
		Import: ImportSettings{MaxUploadMB: 10, RenumberBatch: 200},
		Modeling: ModelingSettings{
			Epoch:        "2020-01-01",
			RemarkMarker: "confirm",
			DefaultHour:  12,
		},
	}
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"both outputs enabled", func(s *Settings) { s.Output.MySQL.Enabled = true }},
		{"no output enabled", func(s *Settings) { s.Output.SQLite.Enabled = false }},
		{"sqlite without path", func(s *Settings) { s.Output.SQLite.Path = "" }},
		{"empty port", func(s *Settings) { s.Server.Port = "" }},
		{"zero renumber batch", func(s *Settings) { s.Import.RenumberBatch = 0 }},
		{"bad epoch", func(s *Settings) { s.Modeling.Epoch = "last year" }},
		{"default hour out of range", func(s *Settings) { s.Modeling.DefaultHour = 24 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			settings := validSettings()
			tt.mutate(settings)
			assert.Error(t, ValidateSettings(settings))
		})
	}
}
