package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RECONCILE_CONFIG", "")
	t.Setenv("RECONCILE_ROUNDING_POLICY", "")
	t.Setenv("CURRENCY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RoundingPolicy != "half-up" {
		t.Fatalf("expected half-up default, got %q", cfg.RoundingPolicy)
	}
	if cfg.Currency != "JPY" {
		t.Fatalf("expected JPY default, got %q", cfg.Currency)
	}
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reconcile.yaml")
	content := "rounding_policy: floor\ncurrency: USD\nreport_titles:\n  client_billing: Invoices\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("RECONCILE_CONFIG", path)
	t.Setenv("RECONCILE_ROUNDING_POLICY", "half-even")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RoundingPolicy != "half-even" {
		t.Fatalf("env must override file, got %q", cfg.RoundingPolicy)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("expected USD from file, got %q", cfg.Currency)
	}
	if cfg.TitleFor(ReportClientBilling) != "Invoices" {
		t.Fatalf("expected title override, got %q", cfg.TitleFor(ReportClientBilling))
	}
	if cfg.TitleFor(ReportWorkerPayment) != "Worker Payment" {
		t.Fatalf("expected default title, got %q", cfg.TitleFor(ReportWorkerPayment))
	}
}

func TestLoadConfig_InvalidPolicy(t *testing.T) {
	t.Setenv("RECONCILE_CONFIG", "")
	t.Setenv("RECONCILE_ROUNDING_POLICY", "stochastic")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown rounding policy")
	}
}
