package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mahastuti/Birdstrike-sub000/cmd/derive"
	"github.com/mahastuti/Birdstrike-sub000/cmd/serve"
	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strikedash",
		Short: "Aviation wildlife-hazard data backend",
	}

	subcommands := []*cobra.Command{
		serve.Command(settings),
		derive.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}
