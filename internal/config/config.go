package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Nestegg"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"nestegg"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Budget holds the default split percentages applied to takehome
	// pay when estimating a budget. They are configuration, not
	// constants, so deployments (and tests) can override them.
	Budget struct {
		MandatoryPct     float64 `envconfig:"BUDGET_MANDATORY_PCT" default:"16"`
		MortgagePct      float64 `envconfig:"BUDGET_MORTGAGE_PCT" default:"29"`
		DGRPct           float64 `envconfig:"BUDGET_DGR_PCT" default:"25"`
		DiscretionaryPct float64 `envconfig:"BUDGET_DISCRETIONARY_PCT" default:"30"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
