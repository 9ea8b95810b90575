package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	AppEnv      string
	APIBasePath string
	CORSOrigins string

	// Database configuration
	DBType            string // sqlite, mysql, mariadb, postgres, sqlserver, badger
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string
	DBAutoMigrate     bool

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Event publishing configuration
	NatsURL           string
	NatsSubjectPrefix string
}

// Load loads configuration from environment variables.
// A .env file (or the file named by ENV_FILE) is read first when present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		APIBasePath:       strings.TrimSuffix(getEnv("API_BASE_PATH", ""), "/"),
		CORSOrigins:       getEnv("CORS_ALLOW_ORIGINS", "*"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		DBAutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		NatsURL:           getEnv("NATS_URL", ""),
		NatsSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "drones"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and the combinations the connectors depend on
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	switch c.DBType {
	case "sqlite", "badger":
	case "mysql", "mariadb", "postgres", "postgresql", "sqlserver", "mssql":
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for DB_TYPE %s", c.DBType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}
	if c.DBConnectionLimit < 1 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", c.DBConnectionLimit)
	}
	return nil
}

// IsProduction reports whether internal error details must be hidden from clients
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultPort(dbType string) string {
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

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
