package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	StorageDriver      string
	MenuFile           string
	BackupDir          string
	Environment        string
	LogLevel           string
	ShutdownTimeout    time.Duration
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	AMQPURL            string
	AMQPExchange       string
}

const (
	defaultRunAddress      = ":3000"
	defaultStorageDriver   = StoragePostgres
	defaultBackupDir       = "backups"
	defaultEnvironment     = EnvProduction
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 10 << 20
	defaultCORSOrigins     = "*"
	defaultAMQPExchange    = "orders"
)

// Development reports whether error details may be exposed to clients.
func (c *Config) Development() bool {
	return c.Environment == EnvDevelopment
}

// Load parses configuration from .env, flags and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	runAddress := getString(lookup, "RUN_ADDRESS", "")
	if runAddress == "" {
		if port := getString(lookup, "PORT", ""); port != "" {
			runAddress = ":" + port
		} else {
			runAddress = defaultRunAddress
		}
	}

	cfg := &Config{
		RunAddress:      runAddress,
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		StorageDriver:   getString(lookup, "STORAGE_DRIVER", defaultStorageDriver),
		MenuFile:        getString(lookup, "MENU_FILE", ""),
		BackupDir:       getString(lookup, "BACKUP_DIR", defaultBackupDir),
		Environment:     getString(lookup, "APP_ENV", defaultEnvironment),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxBodyBytes:    getInt64(lookup, "MAX_BODY_BYTES", defaultMaxBodyBytes),
		AMQPURL:         getString(lookup, "AMQP_URL", ""),
		AMQPExchange:    getString(lookup, "AMQP_EXCHANGE", defaultAMQPExchange),
	}
	corsOrigins := getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)

	fs := flag.NewFlagSet("homekitchen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver: postgres or memory")
	fs.StringVar(&cfg.MenuFile, "menu", cfg.MenuFile, "JSON file with menu items to seed")
	fs.StringVar(&cfg.BackupDir, "backup-dir", cfg.BackupDir, "Directory for backup files")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "Runtime environment")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for order events")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	if cfg.AMQPExchange == "" {
		cfg.AMQPExchange = defaultAMQPExchange
	}

	cfg.CORSAllowedOrigins = splitList(corsOrigins)
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{defaultCORSOrigins}
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
