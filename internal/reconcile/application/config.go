package application

import (
	"os"

	"gopkg.in/yaml.v3"

	reconcile "gigledger/internal/reconcile/domain"
)

// Config defines reconciliation configuration.
type Config struct {
	RoundingPolicy string            `yaml:"rounding_policy"`
	Currency       string            `yaml:"currency"`
	ReportTitles   map[string]string `yaml:"report_titles"`
}

// LoadConfig loads config from yaml or env. The yaml file named by
// RECONCILE_CONFIG overrides defaults; RECONCILE_ROUNDING_POLICY overrides
// the file.
func LoadConfig() (Config, error) {
	cfg := Config{
		RoundingPolicy: string(reconcile.RoundHalfUp),
		Currency:       getenvDefault("CURRENCY", "JPY"),
	}

	if path := os.Getenv("RECONCILE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if policy := os.Getenv("RECONCILE_ROUNDING_POLICY"); policy != "" {
		cfg.RoundingPolicy = policy
	}
	if _, err := reconcile.ParseRoundingPolicy(cfg.RoundingPolicy); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TitleFor returns the display title for a report kind, honoring overrides.
func (c Config) TitleFor(kind ReportKind) string {
	if c.ReportTitles != nil {
		if title, ok := c.ReportTitles[string(kind)]; ok && title != "" {
			return title
		}
	}
	return kind.Title()
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
