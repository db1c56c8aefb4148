/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package client

import "errors"

var (
	ErrBaseURLRequired   = errors.New("API base URL is required")
	ErrUnauthorized      = errors.New("API rejected the token")
	ErrMissingToken      = errors.New("login response did not include a token")
	errUnexpectedStatus  = errors.New("unexpected status")
	errUnparseableUpload = errors.New("unparseable uploaded_at")
)
