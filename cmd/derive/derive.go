// Package derive implements the one-shot modeling derivation subcommand.
package derive

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/modeling"
)

// Command returns the derive subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "derive",
		Short: "Run the modeling derivation once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerivation(settings)
		},
	}
}

func runDerivation(settings *conf.Settings) error {
	ds := datastore.New(settings)
	if ds == nil {
		return errors.New("no datastore configured")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() { _ = ds.Close() }()

	deriver := modeling.NewDeriver(ds, &settings.Modeling, nil)
	result, err := deriver.Run()
	if err != nil {
		return err
	}

	fmt.Printf("derivation finished: %d created, %d skipped\n", result.Created, result.Skipped)
	return nil
}
