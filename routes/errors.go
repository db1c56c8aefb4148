/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errSessionUserMissing  = errors.New("session user missing")
	errJWTSecretRequired   = errors.New("JWT secret is required")
	errJWTSecretTooShort   = errors.New("JWT secret must be at least 32 bytes")
	errMissingBearerToken  = errors.New("missing bearer token")
	errInvalidAPIToken     = errors.New("invalid API token")
	errEmptyReport         = errors.New("report is empty")
	errReportNotText       = errors.New("report must be UTF-8 text")
	errReportTooLarge      = errors.New("report is too large")
	errUnexpectedSignature = errors.New("unexpected signing method")
)
