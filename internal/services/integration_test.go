package services_test

import (
	"context"
	"os"
	"testing"

	"github.com/localnerve/dronedb/internal/database"
	"github.com/localnerve/dronedb/internal/devcontainers"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/stretchr/testify/require"
)

// TestContainerBackends runs the store tests against a real database server
// started from DB_TYPE and DB_IMAGE, e.g. DB_TYPE=mariadb DB_IMAGE=mariadb:11.
func TestContainerBackends(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	if os.Getenv("DB_IMAGE") == "" {
		t.Skip("DB_IMAGE not set")
	}

	ctx := context.Background()
	db, err := devcontainers.StartDatabase(ctx, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Terminate(ctx) })

	conn, err := database.Connect(db.Config, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(conn))
	store := services.NewGormStore(conn)
	t.Cleanup(func() { _ = store.Close() })

	clear := func(t *testing.T) {
		require.NoError(t, conn.Exec("DELETE FROM drones").Error)
	}

	for name, test := range map[string]func(*testing.T, services.DroneStore){
		"insert":  insertAssignsIdentityAndDefaults,
		"filters": findManyFilters,
		"window":  findManyOrderAndWindow,
		"errors":  updateByIDErrors,
		"update":  updateByID,
		"delete":  deleteByID,
		"stats":   aggregateStats,
	} {
		t.Run(name, func(t *testing.T) {
			clear(t)
			test(t, store)
		})
	}
}
