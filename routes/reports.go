/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/amangit2224/medlens/db"
	"github.com/amangit2224/medlens/utils"
)

// MaxReportSize is the largest report accepted for upload.
const MaxReportSize = 2 << 20

// MaxUploadBodySize bounds the whole upload request, form overhead included.
const MaxUploadBodySize = MaxReportSize + 64<<10

const pastedReportName = "pasted-report.txt"

var (
	listReportsFn         = db.ListReports
	getReportFn           = db.GetReport
	createReportFn        = db.CreateReport
	deleteReportFn        = db.DeleteReport
	updateReportSummaryFn = db.UpdateReportSummary
)

// ReportListItem is a report row on the history page.
type ReportListItem struct {
	db.Report
	Readings int
}

// History lists the user's reports, newest first.
func History(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	setPageTitle(data, "History")
	data["IsHistory"] = true

	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	reports, err := listReportsFn(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to list reports", "user_id", userID, "error", err)
		data["Error"] = "Failed to load your reports"
		t.HTML(http.StatusInternalServerError, "history")

		return
	}

	items := make([]ReportListItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, ReportListItem{
			Report:   r,
			Readings: len(extractor.Extract(r.SummaryText())),
		})
	}

	data["Reports"] = items
	t.HTML(http.StatusOK, "history")
}

// UploadForm renders the upload page.
func UploadForm(t template.Template, data template.Data) {
	setPageTitle(data, "Upload")
	data["IsUpload"] = true
	data["SummarizerEnabled"] = summarizer != nil
	t.HTML(http.StatusOK, "upload")
}

// Upload stores a text report and, when a summarizer is configured, its
// plain-language summary.
func Upload(c flamego.Context, s session.Session) {
	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	filename, content, err := readUploadedReport(c.Request().Request)
	if err != nil {
		switch {
		case errors.Is(err, errEmptyReport):
			SetErrorFlash(s, "Choose a file or paste the report text")
		case errors.Is(err, errReportNotText):
			SetErrorFlash(s, "Only plain-text reports are supported")
		case errors.Is(err, errReportTooLarge):
			SetErrorFlash(s, "The report is too large")
		default:
			logger.Warn("Failed to read uploaded report", "error", err)
			SetErrorFlash(s, "Failed to read the uploaded report")
		}

		c.Redirect("/upload", http.StatusSeeOther)

		return
	}

	ctx := c.Request().Context()

	report, err := createReportFn(ctx, db.CreateReportInput{
		UserID:   userID,
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		logger.Error("Failed to store report", "user_id", userID, "error", err)
		SetErrorFlash(s, "Failed to save the report")
		c.Redirect("/upload", http.StatusSeeOther)

		return
	}

	if summarizer != nil {
		if err := summarizeStoredReport(ctx, userID, report); err != nil {
			logger.Warn("Failed to summarize report", "report_id", report.ID, "error", err)
			SetWarningFlash(s, "Report saved, but the summary could not be generated")
			c.Redirect("/report/"+report.ID.String(), http.StatusSeeOther)

			return
		}
	}

	SetSuccessFlash(s, "Report uploaded")
	c.Redirect("/report/"+report.ID.String(), http.StatusSeeOther)
}

func summarizeStoredReport(ctx context.Context, userID string, report *db.Report) error {
	summary, err := summarizer.SummarizeReport(ctx, report.Filename, report.Content)
	if err != nil {
		return err
	}

	if err := updateReportSummaryFn(ctx, userID, report.ID.String(), summary); err != nil {
		return err
	}

	report.Summary = summary

	return nil
}

// readUploadedReport takes the "report" file when present, otherwise the
// pasted "content" field.
func readUploadedReport(r *http.Request) (string, string, error) {
	if err := r.ParseMultipartForm(MaxReportSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", "", errReportTooLarge
		}

		return "", "", err
	}

	filename := pastedReportName
	content := r.FormValue("content")

	file, header, err := r.FormFile("report")

	switch {
	case err == nil:
		defer func() {
			if err := file.Close(); err != nil {
				logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()

		raw, err := io.ReadAll(io.LimitReader(file, MaxReportSize+1))
		if err != nil {
			return "", "", err
		}

		if len(raw) > MaxReportSize {
			return "", "", errReportTooLarge
		}

		filename = filepath.Base(header.Filename)
		content = string(raw)
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return "", "", err
	}

	if len(content) > MaxReportSize {
		return "", "", errReportTooLarge
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", errEmptyReport
	}

	if !utf8.ValidString(content) || strings.ContainsRune(content, 0) {
		return "", "", errReportNotText
	}

	return filename, content, nil
}

// ViewReport shows a report with its rendered summary and the readings
// found in it.
func ViewReport(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	report, err := getReportFn(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if !errors.Is(err, db.ErrReportNotFound) {
			logger.Error("Failed to load report", "report_id", c.Param("id"), "error", err)
		}

		SetErrorFlash(s, "Report not found")
		c.Redirect("/history", http.StatusSeeOther)

		return
	}

	setPageTitle(data, report.Filename)
	data["IsHistory"] = true
	data["Report"] = report
	data["SummaryHTML"] = utils.RenderMarkdown(report.Summary)
	data["Readings"] = extractor.Extract(report.SummaryText())
	t.HTML(http.StatusOK, "report")
}

// DeleteReport removes a report.
func DeleteReport(c flamego.Context, s session.Session) {
	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	if err := deleteReportFn(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			SetErrorFlash(s, "Report not found")
		} else {
			logger.Error("Failed to delete report", "report_id", c.Param("id"), "error", err)
			SetErrorFlash(s, "Failed to delete the report")
		}

		c.Redirect("/history", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Report deleted")
	c.Redirect("/history", http.StatusSeeOther)
}
