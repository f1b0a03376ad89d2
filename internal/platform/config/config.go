// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, matching weights) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/sommelier/internal/core/match"
)

// # Configuration Schema

// Config holds all runtime configuration for the Sommelier API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Tokens are issued by the account service; only the public key is needed here.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Catalog snapshot lifecycle
	CatalogRefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"5m"`
	FacetCacheTTL          time.Duration `env:"FACET_CACHE_TTL"          envDefault:"10m"`

	// Matching weights
	TasteWeight     float64 `env:"MATCH_TASTE_WEIGHT"     envDefault:"0.6"`
	TraitWeight     float64 `env:"MATCH_TRAIT_WEIGHT"     envDefault:"0.4"`
	CategoryPenalty float64 `env:"MATCH_CATEGORY_PENALTY" envDefault:"0.5"`

	// Profile store circuit breaker
	ProfileBreakerFailures uint32        `env:"PROFILE_BREAKER_FAILURES" envDefault:"5"`
	ProfileBreakerTimeout  time.Duration `env:"PROFILE_BREAKER_TIMEOUT"  envDefault:"30s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Weights are validated eagerly so a bad deployment fails at startup.
	if _, err := cfg.MatchWeights(); err != nil {
		return nil, err
	}

	if err := cfg.validateIntervals(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateIntervals rejects durations and thresholds that would panic a
// ticker or disable expiry.
func (c *Config) validateIntervals() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"CATALOG_REFRESH_INTERVAL", c.CatalogRefreshInterval},
		{"FACET_CACHE_TTL", c.FacetCacheTTL},
		{"PROFILE_BREAKER_TIMEOUT", c.ProfileBreakerTimeout},
	}
	for _, duration := range durations {
		if duration.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", duration.name, duration.value)
		}
	}

	if c.ProfileBreakerFailures == 0 {
		return fmt.Errorf("config: PROFILE_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

// MatchWeights returns the scoring weights configured for the matching engine.
func (c *Config) MatchWeights() (match.Weights, error) {
	weights := match.Weights{
		Taste:           c.TasteWeight,
		Trait:           c.TraitWeight,
		CategoryPenalty: c.CategoryPenalty,
	}
	if err := weights.Validate(); err != nil {
		return match.Weights{}, fmt.Errorf("config: %w", err)
	}
	return weights, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsOrigin reports whether origin is listed in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	for _, allowed := range strings.Split(c.ExtraOrigins, ",") {
		if allowed = strings.TrimSpace(allowed); allowed != "" && allowed == origin {
			return true
		}
	}
	return false
}
