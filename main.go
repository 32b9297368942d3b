package main

import (
	"log"
	"os"

	"github.com/mahastuti/Birdstrike-sub000/cmd"
	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	logging.Init(settings)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Console().Error("command failed", "error", err)
		os.Exit(1)
	}
}
