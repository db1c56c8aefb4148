/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in DATABASE_URL")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")

	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrFilenameRequired = errors.New("filename is required")
	ErrReportNotFound   = errors.New("report not found")

	ErrSummarizerNotConfigured = errors.New("summarizer is not configured: OLLAMA_URL and OLLAMA_MODEL must be set")
	ErrTermRequired            = errors.New("term is required")
	errEmptySummary            = errors.New("summarizer returned an empty summary")
	errEmptyExplanation        = errors.New("summarizer returned an empty explanation")
	errInvalidSessionConfig    = errors.New("invalid PostgresSessionConfig")
)
