// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"
)

func testContext() context.Context {
	return context.Background()
}

func mustCreateUser(t *testing.T, username string) *User {
	t.Helper()

	user, err := CreateUser(testContext(), username, "correct-horse")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

func mustCreateReport(t *testing.T, user *User, filename, summary string, uploadedAt time.Time) *Report {
	t.Helper()

	report, err := CreateReport(testContext(), CreateReportInput{
		UserID:     user.ID.String(),
		Filename:   filename,
		Content:    "raw " + filename,
		Summary:    summary,
		UploadedAt: &uploadedAt,
	})
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}

	return report
}
