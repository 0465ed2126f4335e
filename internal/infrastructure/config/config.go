package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/iho/splitsync/internal/domain"
)

// Config holds all application configuration. It is loaded once at startup
// and passed down as an immutable value; core logic never reads the process
// environment.
type Config struct {
	// Source ledger
	SplitwiseAPIKey string `env:"SPLITWISE_API_KEY"`
	SplitwiseAPIURL string `env:"SPLITWISE_API_URL" envDefault:"https://secure.splitwise.com/api/v3.0"`

	// Target ledger
	YNABAccessToken string `env:"YNAB_ACCESS_TOKEN"`
	YNABAPIURL      string `env:"YNAB_API_URL"      envDefault:"https://api.ynab.com/v1"`
	YNABBudgetID    string `env:"YNAB_BUDGET_ID"    envDefault:"last-used"`
	YNABAccountName string `env:"YNAB_ACCOUNT_NAME" envDefault:"Splitwise (Wallet)"`

	// HTTP
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the pre-flight checks that must pass before any network
// call is made.
func (c *Config) Validate() error {
	if c.SplitwiseAPIKey == "" {
		return fmt.Errorf("%w: SPLITWISE_API_KEY is not set", domain.ErrMissingCredential)
	}
	if c.YNABAccessToken == "" {
		return fmt.Errorf("%w: YNAB_ACCESS_TOKEN is not set", domain.ErrMissingCredential)
	}
	if strings.TrimSpace(c.YNABAccountName) == "" {
		return fmt.Errorf("%w: YNAB_ACCOUNT_NAME must not be empty", domain.ErrInvalidConfiguration)
	}
	if c.SplitwiseAPIURL == "" || c.YNABAPIURL == "" {
		return fmt.Errorf("%w: ledger base URLs must not be empty", domain.ErrInvalidConfiguration)
	}
	return nil
}
