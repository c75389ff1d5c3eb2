// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// APIBaseURL is the base URL of the backend content API. Every resource
	// call is made against this URL; a missing or malformed value is a
	// deployment error, so Load rejects it instead of letting requests fail
	// later with unhelpful network errors.
	APIBaseURL string `env:"AMANI_API_BASE_URL,required"`

	SessionSecret string `env:"AMANI_SESSION_SECRET,required"`
	DBPath        string `env:"AMANI_DB_PATH" envDefault:"./data/amani.db"`
	ServerHost    string `env:"AMANI_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"AMANI_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"AMANI_ENV" envDefault:"development"`
	LogLevel      string `env:"AMANI_LOG_LEVEL" envDefault:"info"`
	SiteName      string `env:"AMANI_SITE_NAME" envDefault:"Amani Foundation"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate the API base URL up front
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("AMANI_API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("AMANI_API_BASE_URL must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("AMANI_API_BASE_URL has no host: %q", cfg.APIBaseURL)
	}
	// Resource paths are joined onto the base, so a trailing slash would
	// produce double slashes in request URLs.
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("AMANI_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
