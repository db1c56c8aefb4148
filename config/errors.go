/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import "errors"

var (
	errInvalidClientTimeout     = errors.New("client.timeout must be positive")
	errInvalidSummarizerTimeout = errors.New("summarizer.timeout must be positive")
	errInvalidSummarizerRate    = errors.New("summarizer.requests_per_minute must not be negative")
)
