package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/seed"
	"github.com/localnerve/dronedb/internal/services"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var clearFirst bool
	flag.BoolVar(&clearFirst, "clear", false, "delete every drone before seeding")
	flag.Parse()

	usage := `
Load the sample drone catalog into the store configured by the environment (or ENV_FILE).

Usage:

seed [-h] [-clear]
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info", "text").Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.NewLoggerTo(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := services.NewStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBType, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	summary, err := seed.Run(ctx, store, clearFirst, log)
	cancel()
	_ = store.Close()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
