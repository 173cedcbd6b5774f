package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config captures environment driven configuration values for the reservation console.
type Config struct {
	DBDriver    string
	DBDSN       string
	BusyTimeout time.Duration
	LogLevel    string
	LogFormat   string
	Seed        bool
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields and reports every missing or
// malformed entry in a single localized error.
func Load() (Config, error) {
	cfg := Config{
		DBDriver:    DriverSQLite,
		DBDSN:       "reservations.db",
		BusyTimeout: 5 * time.Second,
		LogLevel:    "warn",
		LogFormat:   "json",
		Seed:        true,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if driver := strings.ToLower(strings.TrimSpace(os.Getenv("RESERVATIONS_DB_DRIVER"))); driver != "" {
		switch driver {
		case DriverSQLite, DriverPostgres, DriverMySQL:
			cfg.DBDriver = driver
		default:
			invalid = append(invalid, "RESERVATIONS_DB_DRIVER")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("RESERVATIONS_DB_DSN")); dsn != "" {
		cfg.DBDSN = dsn
	} else if cfg.DBDriver != DriverSQLite {
		missing = append(missing, "RESERVATIONS_DB_DSN")
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("RESERVATIONS_BUSY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout < 0 {
			invalid = append(invalid, "RESERVATIONS_BUSY_TIMEOUT")
		} else {
			cfg.BusyTimeout = timeout
		}
	}

	if level := strings.ToLower(strings.TrimSpace(os.Getenv("RESERVATIONS_LOG_LEVEL"))); level != "" {
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		default:
			invalid = append(invalid, "RESERVATIONS_LOG_LEVEL")
		}
	}

	if format := strings.ToLower(strings.TrimSpace(os.Getenv("RESERVATIONS_LOG_FORMAT"))); format != "" {
		switch format {
		case "json", "text":
			cfg.LogFormat = format
		default:
			invalid = append(invalid, "RESERVATIONS_LOG_FORMAT")
		}
	}

	if seedValue := strings.TrimSpace(os.Getenv("RESERVATIONS_SEED")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "RESERVATIONS_SEED")
		} else {
			cfg.Seed = seed
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("variables d'environnement obligatoires manquantes: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valeurs de variables d'environnement invalides: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadDotEnv populates the process environment from the given dotenv files,
// defaulting to ".env". Variables already present in the environment win and
// files that do not exist are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}
