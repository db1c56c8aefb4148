/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/amangit2224/medlens/trends"
)

// User represents an authenticated account.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Report is an uploaded lab report with its plain-language summary.
type Report struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Filename   string    `db:"filename"`
	Content    string    `db:"content"`
	Summary    string    `db:"plain_summary"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// SummaryText returns the text trend extraction runs over. Reports without
// a generated summary fall back to their raw content.
func (r Report) SummaryText() string {
	if r.Summary != "" {
		return r.Summary
	}

	return r.Content
}

// TrendsReport converts r for trend aggregation.
func (r Report) TrendsReport() trends.Report {
	return trends.Report{
		ID:         r.ID.String(),
		Filename:   r.Filename,
		UploadedAt: r.UploadedAt,
		Summary:    r.SummaryText(),
	}
}

// TrendsReports converts reports for trend aggregation, keeping their order.
func TrendsReports(reports []Report) []trends.Report {
	out := make([]trends.Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.TrendsReport())
	}

	return out
}
