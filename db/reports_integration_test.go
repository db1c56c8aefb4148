// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
	"time"

	"github.com/amangit2224/medlens/trends"
)

func TestReportLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	owner := mustCreateUser(t, "owner")
	other := mustCreateUser(t, "other")

	jan := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

	older := mustCreateReport(t, owner, "jan.pdf", "**Glucose:** 100 mg/dL", jan)
	newer := mustCreateReport(t, owner, "feb.pdf", "**Glucose:** 110 mg/dL", feb)
	mustCreateReport(t, other, "other.pdf", "**Glucose:** 90 mg/dL", feb)

	if _, err := CreateReport(ctx, CreateReportInput{UserID: owner.ID.String(), Filename: " "}); !errors.Is(err, ErrFilenameRequired) {
		t.Fatalf("expected ErrFilenameRequired, got %v", err)
	}

	reports, err := ListReports(ctx, owner.ID.String())
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != newer.ID || reports[1].ID != older.ID {
		t.Fatalf("expected newest report first")
	}

	count, err := CountReports(ctx, owner.ID.String())
	if err != nil {
		t.Fatalf("CountReports failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 reports, got %d", count)
	}

	if _, err := GetReport(ctx, other.ID.String(), older.ID.String()); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected other user to be denied, got %v", err)
	}

	if _, err := GetReport(ctx, owner.ID.String(), "not-a-uuid"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound for malformed id, got %v", err)
	}

	if err := UpdateReportSummary(ctx, owner.ID.String(), older.ID.String(), "**Glucose:** 95 mg/dL"); err != nil {
		t.Fatalf("UpdateReportSummary failed: %v", err)
	}

	got, err := GetReport(ctx, owner.ID.String(), older.ID.String())
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.Summary != "**Glucose:** 95 mg/dL" {
		t.Fatalf("expected updated summary, got %q", got.Summary)
	}

	if err := DeleteReport(ctx, other.ID.String(), older.ID.String()); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected other user delete to fail, got %v", err)
	}

	if err := DeleteReport(ctx, owner.ID.String(), older.ID.String()); err != nil {
		t.Fatalf("DeleteReport failed: %v", err)
	}

	reports, err = ListReports(ctx, owner.ID.String())
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report after delete, got %d", len(reports))
	}
}

func TestStoredReportsAggregate(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	user := mustCreateUser(t, "trends")

	mustCreateReport(t, user, "jan.pdf", "**Glucose:** 100 mg/dL", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	mustCreateReport(t, user, "feb.pdf", "**Glucose:** 120 mg/dL", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	reports, err := ListReports(ctx, user.ID.String())
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}

	result := trends.Aggregate(TrendsReports(reports))

	if got := trends.Insight(result.Get("Glucose")); got != "Glucose has increased by 20.0% (from 100 to 120 mg/dL)." {
		t.Fatalf("unexpected insight %q", got)
	}
}
