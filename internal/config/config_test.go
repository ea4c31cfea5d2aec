package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/allowance",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.SavingsRate != defaultSavingsRate {
		t.Fatalf("unexpected savings rate: %f", cfg.SavingsRate)
	}
	if cfg.CreditRate != defaultCreditRate {
		t.Fatalf("unexpected credit rate: %f", cfg.CreditRate)
	}
	if cfg.NtfyTopic != defaultNtfyTopic {
		t.Fatalf("unexpected ntfy topic: %s", cfg.NtfyTopic)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Fatalf("unexpected sweep interval: %s", cfg.SweepInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"DATABASE_URI":           "postgres://localhost/allowance",
		"RUN_ADDRESS":            ":9000",
		"SAVINGS_INTEREST_RATE":  "0.03",
		"CREDIT_INTEREST_RATE":   "0.18",
		"SESSION_TTL":            "1h",
		"CATCHUP_SWEEP_WORKERS":  "5",
		"CATCHUP_SWEEP_INTERVAL": "30m",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9000" {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.SavingsRate != 0.03 || cfg.CreditRate != 0.18 {
		t.Fatalf("unexpected rates: %f %f", cfg.SavingsRate, cfg.CreditRate)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
	}
	if cfg.SweepWorkers != 5 || cfg.SweepInterval != 30*time.Minute {
		t.Fatalf("unexpected sweep settings: %d %s", cfg.SweepWorkers, cfg.SweepInterval)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(lookupFrom(nil)); err == nil {
		t.Fatal("expected error without database URI")
	}
}

func TestLoadRejectsNegativeRates(t *testing.T) {
	_, err := load(lookupFrom(map[string]string{
		"DATABASE_URI":          "postgres://localhost/allowance",
		"SAVINGS_INTEREST_RATE": "-0.01",
	}))
	if err == nil {
		t.Fatal("expected error for negative savings rate")
	}
}

func TestLoadSessionSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("s3cr3t"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(lookupFrom(map[string]string{
		"DATABASE_URI":        "postgres://localhost/allowance",
		"SESSION_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionSecret != "s3cr3t" {
		t.Fatalf("unexpected secret: %q", cfg.SessionSecret)
	}

	if _, err := load(lookupFrom(map[string]string{
		"DATABASE_URI":        "postgres://localhost/allowance",
		"SESSION_SECRET_FILE": filepath.Join(t.TempDir(), "missing"),
	})); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	cfg, err := load(lookupFrom(map[string]string{
		"DATABASE_URI":          "postgres://localhost/allowance",
		"SAVINGS_INTEREST_RATE": "not-a-number",
		"SESSION_TTL":           "garbage",
		"CATCHUP_SWEEP_WORKERS": "-1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SavingsRate != defaultSavingsRate {
		t.Fatalf("unexpected savings rate: %f", cfg.SavingsRate)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Fatalf("unexpected ttl: %s", cfg.SessionTTL)
	}
	if cfg.SweepWorkers != defaultSweepWorkers {
		t.Fatalf("unexpected workers: %d", cfg.SweepWorkers)
	}
}
