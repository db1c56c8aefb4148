/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errCSRFSecretRequired    = errors.New("CSRF_SECRET is required in production")
	errJWTSecretRequired     = errors.New("jwt-secret is required (set via --jwt-secret or JWT_SECRET env var)")
	errAPIURLRequired        = errors.New("api-url is required (set via --api-url or MEDLENS_API_URL env var)")
	errCredentialsIncomplete = errors.New("username and password must be given together")
	errInvalidRuntimeEnv     = errors.New(runtimeEnvVar + " must be one of: development, dev, production, prod")
)
