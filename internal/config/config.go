package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from the environment.
// Command line flags (kong) may override individual fields after Load.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	SessionSecret string
	SessionTTL    time.Duration

	// SavingsRate is the annualized yield credited on positive month-end
	// balances; CreditRate is the annualized rate charged on negative ones.
	SavingsRate float64
	CreditRate  float64

	NtfyServer string
	NtfyTopic  string

	StaticDir string

	SweepInterval   time.Duration
	SweepWorkers    int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 30 * 24 * time.Hour
	defaultSavingsRate     = 0.05
	defaultCreditRate      = 0.24
	defaultNtfyTopic       = "allowance"
	defaultStaticDir       = "../frontend/build"
	defaultSweepInterval   = time.Hour
	defaultSweepWorkers    = 2
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SavingsRate:     getFloat(lookup, "SAVINGS_INTEREST_RATE", defaultSavingsRate),
		CreditRate:      getFloat(lookup, "CREDIT_INTEREST_RATE", defaultCreditRate),
		NtfyServer:      getString(lookup, "NTFY_SERVER", ""),
		NtfyTopic:       getString(lookup, "NTFY_TOPIC", defaultNtfyTopic),
		StaticDir:       getString(lookup, "STATIC_DIR", defaultStaticDir),
		SweepInterval:   getDuration(lookup, "CATCHUP_SWEEP_INTERVAL", defaultSweepInterval),
		SweepWorkers:    getInt(lookup, "CATCHUP_SWEEP_WORKERS", defaultSweepWorkers),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.SavingsRate < 0 {
		return nil, fmt.Errorf("savings interest rate must not be negative")
	}

	if cfg.CreditRate < 0 {
		return nil, fmt.Errorf("credit interest rate must not be negative")
	}

	if cfg.SweepWorkers <= 0 {
		cfg.SweepWorkers = defaultSweepWorkers
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
