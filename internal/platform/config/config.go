package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends the server can run against.
const (
	BackendSQLite = "sqlite"
	BackendPgSQL  = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DBBackend selects the entity store: "sqlite" (embedded, default) or
	// "pgsql" (shared server).
	DBBackend  string
	SQLitePath string
	PgSQLURL   string

	// RateLimit is a limiter format string like "100-M" (100 requests per
	// minute per client).
	RateLimit string

	// CORSAllowOrigins lists the origins allowed to call the API.
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DB_BACKEND", BackendSQLite)
	viper.SetDefault("SQLITE_PATH", "./data/budget_tracker.db")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:         viper.GetString("PORT"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
		DBBackend:    viper.GetString("DB_BACKEND"),
		SQLitePath:   viper.GetString("SQLITE_PATH"),
		PgSQLURL:     viper.GetString("PGSQL_URL"),
		RateLimit:    viper.GetString("RATE_LIMIT"),
	}

	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}

	switch cfg.DBBackend {
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "./data/budget_tracker.db"
			log.Printf("Warning: SQLITE_PATH not set. Defaulting to %s\n", cfg.SQLitePath)
		}
	case BackendPgSQL:
		if cfg.PgSQLURL == "" {
			return nil, fmt.Errorf("DB_BACKEND is %q but PGSQL_URL is not set", BackendPgSQL)
		}
	default:
		return nil, fmt.Errorf("unknown DB_BACKEND %q (want %q or %q)", cfg.DBBackend, BackendSQLite, BackendPgSQL)
	}

	return cfg, nil
}
