// main.go
//
// A drone model catalog data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of dronedb.
// dronedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// dronedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with dronedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info", "json").Fatalf("Failed to load configuration: %v", err)
	}

	// Probe output goes to stdout, diagnostics to stderr
	log := logging.NewLoggerTo(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// A badger directory is locked by the running server, so ask the server instead
	if cfg.DBType == "badger" {
		os.Exit(probeServer(cfg, log))
	}

	// Migrations are the server's job
	cfg.DBAutoMigrate = false

	store, err := services.NewStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBType, err)
	}
	defer store.Close()

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, store, log)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		_ = store.Close()
		os.Exit(1)
	}
}

// probeServer calls the readiness route of the local server and relays its answer
func probeServer(cfg *config.Config, log logging.Logger) int {
	url := fmt.Sprintf("http://127.0.0.1:%s/health/ready", cfg.Port)

	code, body, errs := fiber.Get(url).Timeout(5 * time.Second).Bytes()
	if len(errs) > 0 {
		log.Errorf("Failed to reach %s: %v", url, errs[0])
		return 1
	}

	fmt.Println(string(body))

	if code != fiber.StatusOK {
		return 1
	}
	return 0
}
