package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMongo  = "mongo"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Session store
	StoreDriver   string // "sqlite" or "mongo"
	SQLitePath    string
	MongoURI      string // required when StoreDriver is "mongo"
	MongoDatabase string

	// SeedDemoData fills an empty store with generated quiz history.
	SeedDemoData bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg, err := LoadFrom(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// LoadFrom builds a Config from a lookup function and reports every
// missing or malformed variable at once.
func LoadFrom(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}
	cfg := &Config{
		ServerAddress:   e.mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: e.mustGetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        e.getLogLevel("LOG_LEVEL", slog.LevelInfo),
		StoreDriver:     strings.ToLower(e.getenvDefault("STORE_DRIVER", StoreDriverSQLite)),
		SQLitePath:      e.getenvDefault("SQLITE_PATH", "prepflow.db"),
		MongoURI:        e.getenvDefault("MONGO_URI", ""),
		MongoDatabase:   e.getenvDefault("MONGO_DATABASE", "prepflow"),
		SeedDemoData:    e.getBool("SEED_DEMO_DATA", false),
	}

	switch cfg.StoreDriver {
	case StoreDriverSQLite:
	case StoreDriverMongo:
		if cfg.MongoURI == "" {
			e.fail("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	default:
		e.fail(fmt.Sprintf("STORE_DRIVER=%q is not one of sqlite, mongo", cfg.StoreDriver))
	}

	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	return cfg, nil
}

type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) fail(msg string) {
	e.errs = append(e.errs, errors.New(msg))
}

func (e *env) mustGetenv(k string) string {
	v := e.getenv(k)
	if v == "" {
		e.fail(fmt.Sprintf("required environment variable %s is not set", k))
	}
	return v
}

func (e *env) mustGetDuration(k string) time.Duration {
	v := e.mustGetenv(k)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Sprintf("%s=%q is not a valid duration: %v", k, v, err))
	}
	return d
}

func (e *env) getenvDefault(k, fallback string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return fallback
}

func (e *env) getBool(k string, fallback bool) bool {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(fmt.Sprintf("%s=%q is not a valid bool", k, v))
		return fallback
	}
	return b
}

func (e *env) getLogLevel(k string, fallback slog.Level) slog.Level {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		e.fail(fmt.Sprintf("%s=%q is not a valid log level", k, v))
		return fallback
	}
	return level
}
