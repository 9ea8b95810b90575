// devcontainers.go
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

// Package devcontainers starts throwaway database containers for local
// development and integration tests.
// Expects DB_TYPE, DB_IMAGE and the DB_* credentials in the environment.
package devcontainers

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/go-sql-driver/mysql"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Database is a running database container
type Database struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Env returns the DB_* variables that point the service at the container
func (d *Database) Env() map[string]string {
	return map[string]string{
		"DB_TYPE":     d.Config.DBType,
		"DB_HOST":     d.Config.DBHost,
		"DB_PORT":     d.Config.DBPort,
		"DB_DATABASE": d.Config.DBDatabase,
		"DB_USER":     d.Config.DBUser,
		"DB_PASSWORD": d.Config.DBPassword,
	}
}

// Terminate stops and removes the container
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// StartDatabase starts the DB_IMAGE container for DB_TYPE and waits until it accepts connections
func StartDatabase(ctx context.Context, log logging.Logger) (*Database, error) {
	dbType := os.Getenv("DB_TYPE")
	imageName := os.Getenv("DB_IMAGE")
	if imageName == "" {
		return nil, fmt.Errorf("DB_IMAGE is required")
	}

	cfg := &config.Config{
		DBType:            dbType,
		DBDatabase:        getEnv("DB_DATABASE", "drone_db"),
		DBUser:            getEnv("DB_USER", "drone"),
		DBPassword:        getEnv("DB_PASSWORD", "drone-secret"),
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		DBAutoMigrate:     true,
	}

	if dbType == "sqlserver" || dbType == "mssql" {
		// the image only provisions the sa login and the system databases
		cfg.DBUser = "sa"
		cfg.DBDatabase = getEnv("DB_DATABASE", "master")
		cfg.DBPassword = getEnv("DB_PASSWORD", "Drone-Secret-1")
	}

	containerPort := internalPort(dbType)
	if containerPort == "" {
		return nil, fmt.Errorf("no container support for DB_TYPE %q", dbType)
	}
	tcpDbPort, err := nat.NewPort("tcp", containerPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	if exists, err := imageExists(ctx, imageName); err != nil {
		log.WithError(err).Warnf("Could not list local images")
	} else if !exists {
		log.Infof("Image %s not found locally, pulling...", imageName)
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		// keep the data directory in memory, nothing here outlives the container
		hostConfig.Tmpfs = map[string]string{dataDir(dbType): "rw"}
		if hostPort := os.Getenv("DB_HOST_PORT"); hostPort != "" {
			hostConfig.PortBindings = nat.PortMap{
				tcpDbPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: hostPort}},
			}
		}
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:              imageName,
			ExposedPorts:       []string{string(tcpDbPort)},
			Env:                initEnv(cfg),
			HostConfigModifier: hostConfigModifier,
			WaitingFor:         wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	db := &Database{Container: dbContainer, Config: cfg}

	host, err := dbContainer.Host(ctx)
	if err != nil {
		_ = db.Terminate(ctx)
		return nil, err
	}
	mapped, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		_ = db.Terminate(ctx)
		return nil, err
	}
	cfg.DBHost = host
	cfg.DBPort = mapped.Port()

	if dbType == "mysql" || dbType == "mariadb" {
		if err := waitForMySQL(ctx, cfg); err != nil {
			_ = db.Terminate(ctx)
			return nil, err
		}
	}

	log.WithFields(logging.Fields{"image": imageName, "host": host, "port": cfg.DBPort}).Infof("Database container started")
	return db, nil
}

func internalPort(dbType string) string {
	switch dbType {
	case "mysql", "mariadb":
		return "3306"
	case "postgres", "postgresql":
		return "5432"
	case "sqlserver", "mssql":
		return "1433"
	}
	return ""
}

func dataDir(dbType string) string {
	switch dbType {
	case "postgres", "postgresql":
		return "/var/lib/postgresql/data"
	case "sqlserver", "mssql":
		return "/var/opt/mssql/data"
	}
	return "/var/lib/mysql"
}

func initEnv(cfg *config.Config) map[string]string {
	switch cfg.DBType {
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_PASSWORD": cfg.DBPassword,
			"POSTGRES_USER":     cfg.DBUser,
			"POSTGRES_DB":       cfg.DBDatabase,
		}
	case "sqlserver", "mssql":
		return map[string]string{
			"ACCEPT_EULA":       "Y",
			"MSSQL_SA_PASSWORD": cfg.DBPassword,
		}
	}
	return map[string]string{
		"MYSQL_ROOT_PASSWORD": getEnv("DB_ROOT_PASSWORD", cfg.DBPassword),
		"MYSQL_DATABASE":      cfg.DBDatabase,
		"MYSQL_USER":          cfg.DBUser,
		"MYSQL_PASSWORD":      cfg.DBPassword,
	}
}

// waitForMySQL pings until the server finishes its init scripts. The port
// opens before the application user exists.
func waitForMySQL(ctx context.Context, cfg *config.Config) error {
	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBDatabase

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("MySQL not ready after 30 seconds: %w", err)
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
