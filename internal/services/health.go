package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Messaging    string            `json:"messaging"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, store DroneStore, log logging.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check store connectivity
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := store.Ping(pingCtx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.WithError(err).Errorf("Health check failed - database ping")
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// Check NATS connectivity when event publishing is configured
	if cfg.NatsURL == "" {
		result.Messaging = "disabled"
	} else if err := utils.PingNats(cfg.NatsURL); err != nil {
		result.Status = "unhealthy"
		result.Messaging = "unreachable"
		result.Details["nats_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("NATS ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; NATS ping failed: %v", err)
		}
		log.WithError(err).Errorf("Health check failed - nats ping")
	} else {
		result.Messaging = "ok"
		result.Details["nats_url"] = cfg.NatsURL
	}

	if result.Status == "healthy" {
		log.Infof("Health check passed - all systems operational")
	}

	return result
}
