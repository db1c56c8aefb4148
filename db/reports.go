/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CreateReportInput defines data for storing an uploaded report.
type CreateReportInput struct {
	UserID     string
	Filename   string
	Content    string
	Summary    string
	UploadedAt *time.Time
}

const reportColumns = `id, user_id, filename, content, plain_summary, uploaded_at`

// CreateReport stores a report for a user. UploadedAt defaults to now.
func CreateReport(ctx context.Context, input CreateReportInput) (*Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	input.Filename = strings.TrimSpace(input.Filename)
	if input.Filename == "" {
		return nil, ErrFilenameRequired
	}

	query := `
		INSERT INTO reports (user_id, filename, content, plain_summary, uploaded_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING ` + reportColumns

	report, err := scanReport(pool.QueryRow(ctx, query,
		input.UserID,
		input.Filename,
		input.Content,
		input.Summary,
		input.UploadedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	logger.Info("Stored report", "report_id", report.ID, "user_id", report.UserID, "filename", report.Filename)

	return report, nil
}

// ListReports returns a user's reports, newest upload first.
func ListReports(ctx context.Context, userID string) ([]Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id ASC
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}

	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// GetReport returns one of a user's reports.
func GetReport(ctx context.Context, userID, reportID string) (*Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 AND user_id = $2`

	report, err := scanReport(pool.QueryRow(ctx, query, reportID, userID))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReportNotFound
		}

		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// UpdateReportSummary replaces the plain-language summary of a report.
func UpdateReportSummary(ctx context.Context, userID, reportID, summary string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx,
		`UPDATE reports SET plain_summary = $1 WHERE id = $2 AND user_id = $3`,
		summary, reportID, userID,
	)
	if err != nil {
		if isNotFound(err) {
			return ErrReportNotFound
		}

		return fmt.Errorf("failed to update report summary: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

// DeleteReport removes one of a user's reports.
func DeleteReport(ctx context.Context, userID, reportID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM reports WHERE id = $1 AND user_id = $2`, reportID, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrReportNotFound
		}

		return fmt.Errorf("failed to delete report: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	logger.Info("Deleted report", "report_id", reportID, "user_id", userID)

	return nil
}

// CountReports returns the number of reports a user has uploaded.
func CountReports(ctx context.Context, userID string) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}

	return count, nil
}

func scanReport(row pgx.Row) (*Report, error) {
	var report Report

	if err := row.Scan(
		&report.ID,
		&report.UserID,
		&report.Filename,
		&report.Content,
		&report.Summary,
		&report.UploadedAt,
	); err != nil {
		return nil, err
	}

	return &report, nil
}

// isNotFound treats malformed UUIDs like missing rows.
func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
