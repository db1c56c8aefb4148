/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "github.com/amangit2224/medlens/logging"

var logger = logging.Logger(logging.SourceDB)
