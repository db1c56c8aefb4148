/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import "errors"

var (
	ErrPatternMissingGroup = errors.New("pattern must define label and value groups")
)
