package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/dronedb/internal/devcontainers"
	"github.com/localnerve/dronedb/internal/logging"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Start a throwaway database container for dronedb with the environment variables from the .env file.
Prints the DB_* variables to run the server against it and terminates on SIGINT/SIGTERM.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (DB_TYPE, DB_IMAGE, DB_DATABASE, DB_USER, DB_PASSWORD)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logging.NewLogger("info", "text")

	if envFilename != "" {
		log.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	} else {
		log.Infof("No environment file specified, using current environment variables")
	}

	ctx := context.Background()
	db, err := devcontainers.StartDatabase(ctx, log)
	if err != nil {
		log.Fatalf("Failed to create database container: %v", err)
	}

	env := db.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, env[k])
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Infof("Received signal: %v, terminating database container...", sig)
	if err := db.Terminate(ctx); err != nil {
		log.Errorf("Failed to terminate database container: %v", err)
	}
}
