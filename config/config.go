/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amangit2224/medlens/trends"
)

// Config holds the optional file-based settings. Connection strings and
// secrets come from flags and environment variables instead.
type Config struct {
	Trends     TrendsConfig     `yaml:"trends"`
	Client     ClientConfig     `yaml:"client"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// TrendsConfig tunes trend comparison.
type TrendsConfig struct {
	// LowerIsBetter lists name fragments of tests where a decrease is an
	// improvement.
	LowerIsBetter []string `yaml:"lower_is_better"`
}

// ClientConfig tunes the remote history client.
type ClientConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// SummarizerConfig tunes plain-language summary generation.
type SummarizerConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

const (
	defaultClientTimeout     = 30 * time.Second
	defaultSummarizerTimeout = 2 * time.Minute
	defaultSummarizerRPM     = 6
)

// Default returns the baked-in settings.
func Default() *Config {
	return &Config{
		Trends: TrendsConfig{
			LowerIsBetter: append([]string{}, trends.DefaultLowerIsBetter...),
		},
		Client: ClientConfig{
			Timeout: defaultClientTimeout,
		},
		Summarizer: SummarizerConfig{
			Timeout:           defaultSummarizerTimeout,
			RequestsPerMinute: defaultSummarizerRPM,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Client.Timeout <= 0 {
		return errInvalidClientTimeout
	}

	if c.Summarizer.Timeout <= 0 {
		return errInvalidSummarizerTimeout
	}

	if c.Summarizer.RequestsPerMinute < 0 {
		return errInvalidSummarizerRate
	}

	return nil
}
