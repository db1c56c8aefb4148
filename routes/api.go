/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"

	"github.com/amangit2224/medlens/db"
)

const maxAPIBody = 64 << 10

type apiLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type apiLoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type apiExplainRequest struct {
	Term string `json:"term"`
}

type apiExplainResponse struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

type apiHistoryReport struct {
	ID                   string    `json:"id"`
	Filename             string    `json:"filename"`
	UploadedAt           time.Time `json:"uploaded_at"`
	PlainLanguageSummary string    `json:"plain_language_summary"`
	PlainSummary         string    `json:"plain_summary"`
}

type apiHistoryResponse struct {
	Reports []apiHistoryReport `json:"reports"`
}

// APILogin exchanges credentials for a bearer token.
func APILogin(c flamego.Context) {
	if apiTokens == nil {
		writeJSONError(c, http.StatusServiceUnavailable, "API authentication is not configured")
		return
	}

	var req apiLoginRequest

	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Body().ReadCloser(), maxAPIBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := authenticateUserFn(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if !errors.Is(err, db.ErrInvalidCredentials) {
			logger.Error("Failed to authenticate API user", "error", err)
			writeJSONError(c, http.StatusInternalServerError, "authentication failed")

			return
		}

		writeJSONError(c, http.StatusUnauthorized, "invalid username or password")

		return
	}

	token, expiresAt, err := apiTokens.Issue(user)
	if err != nil {
		logger.Error("Failed to issue API token", "user_id", user.ID, "error", err)
		writeJSONError(c, http.StatusInternalServerError, "failed to issue token")

		return
	}

	writeJSON(c, http.StatusOK, apiLoginResponse{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt.UTC(),
	})
}

// APIHistory returns the caller's reports, newest first.
func APIHistory(c flamego.Context, user APIUser) {
	reports, err := listReportsFn(c.Request().Context(), user.ID)
	if err != nil {
		logger.Error("Failed to list reports", "user_id", user.ID, "error", err)
		writeJSONError(c, http.StatusInternalServerError, "failed to load reports")

		return
	}

	resp := apiHistoryResponse{Reports: make([]apiHistoryReport, 0, len(reports))}

	for _, r := range reports {
		resp.Reports = append(resp.Reports, apiHistoryReport{
			ID:                   r.ID.String(),
			Filename:             r.Filename,
			UploadedAt:           r.UploadedAt.UTC(),
			PlainLanguageSummary: r.SummaryText(),
			PlainSummary:         r.SummaryText(),
		})
	}

	writeJSON(c, http.StatusOK, resp)
}

// APITrends returns the test list, selection, insight and chart data.
func APITrends(c flamego.Context, user APIUser) {
	writeJSON(c, http.StatusOK, loadTrends(c.Request().Context(), user.ID, c.Query("test")))
}

// APICompare compares two of the caller's reports.
func APICompare(c flamego.Context, user APIUser) {
	ctx := c.Request().Context()
	olderID, newerID := c.Query("older"), c.Query("newer")

	if olderID == "" || newerID == "" {
		writeJSONError(c, http.StatusBadRequest, "older and newer report IDs are required")
		return
	}

	older, err := getReportFn(ctx, user.ID, olderID)
	if err != nil {
		writeReportLookupError(c, err)
		return
	}

	newer, err := getReportFn(ctx, user.ID, newerID)
	if err != nil {
		writeReportLookupError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, comparer.Compare(
		extractor.Extract(older.SummaryText()),
		extractor.Extract(newer.SummaryText()),
	))
}

// APIExplain explains a medical term in plain language.
func APIExplain(c flamego.Context, user APIUser) {
	var req apiExplainRequest

	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Body().ReadCloser(), maxAPIBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	term := strings.TrimSpace(req.Term)
	if term == "" {
		writeJSONError(c, http.StatusBadRequest, "term is required")
		return
	}

	if explainer == nil {
		writeJSONError(c, http.StatusServiceUnavailable, "term explanations are not configured")
		return
	}

	explanation, err := explainer.ExplainTerm(c.Request().Context(), term)
	if err != nil {
		logger.Error("Failed to explain term", "user_id", user.ID, "term", term, "error", err)
		writeJSONError(c, http.StatusBadGateway, "failed to explain term")

		return
	}

	writeJSON(c, http.StatusOK, apiExplainResponse{Term: term, Explanation: explanation})
}

func writeReportLookupError(c flamego.Context, err error) {
	if errors.Is(err, db.ErrReportNotFound) {
		writeJSONError(c, http.StatusNotFound, "report not found")
		return
	}

	logger.Error("Failed to load report", "error", err)
	writeJSONError(c, http.StatusInternalServerError, "failed to load report")
}
