package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPTimeout = 120 * time.Second
)

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	GraphBaseURL     string
	AuthorityBaseURL string
	HTTPTimeout      time.Duration

	// MetricsAddr enables the Prometheus listener when non-empty.
	MetricsAddr string
}

type LoadOptions struct {
	RequireCredentials bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireCredentials: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		TenantID:         strings.TrimSpace(os.Getenv("GRAPH_TENANT_ID")),
		ClientID:         strings.TrimSpace(os.Getenv("GRAPH_CLIENT_ID")),
		ClientSecret:     strings.TrimSpace(os.Getenv("GRAPH_CLIENT_SECRET")),
		GraphBaseURL:     strings.TrimSpace(os.Getenv("GRAPH_BASE_URL")),
		AuthorityBaseURL: strings.TrimSpace(os.Getenv("GRAPH_AUTHORITY_URL")),
		HTTPTimeout:      defaultHTTPTimeout,
		MetricsAddr:      strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	if v := os.Getenv("GRAPH_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}

	if opts.RequireCredentials {
		if cfg.TenantID == "" {
			return Config{}, errors.New("GRAPH_TENANT_ID is required")
		}
		if cfg.ClientID == "" {
			return Config{}, errors.New("GRAPH_CLIENT_ID is required")
		}
		if cfg.ClientSecret == "" {
			return Config{}, errors.New("GRAPH_CLIENT_SECRET is required")
		}
	}

	return cfg, nil
}
