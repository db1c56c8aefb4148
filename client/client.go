/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amangit2224/medlens/logging"
	"github.com/amangit2224/medlens/trends"
)

var logger = logging.Logger(logging.SourceClient)

// DefaultTimeout bounds each request end to end.
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 4 << 10

// Client talks to a MedLens backend. Requests are sent once; there is no
// retry or backoff.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for baseURL. token may be empty for Login.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type historyReport struct {
	ID                   string `json:"id"`
	Filename             string `json:"filename"`
	UploadedAt           string `json:"uploaded_at"`
	PlainLanguageSummary string `json:"plain_language_summary"`
	PlainSummary         string `json:"plain_summary"`
}

type historyResponse struct {
	Reports []historyReport `json:"reports"`
}

// History fetches the report history of the authenticated user.
//
// Reports with an unparseable upload time are skipped with a warning.
func (c *Client) History(ctx context.Context) ([]trends.Report, error) {
	var resp historyResponse
	if err := c.do(ctx, http.MethodGet, "/api/report/history", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch report history: %w", err)
	}

	reports := make([]trends.Report, 0, len(resp.Reports))

	for _, r := range resp.Reports {
		uploadedAt, err := ParseUploadedAt(r.UploadedAt)
		if err != nil {
			logger.Warn("Skipping report with invalid upload time", "report_id", r.ID, "uploaded_at", r.UploadedAt)
			continue
		}

		summary := r.PlainLanguageSummary
		if summary == "" {
			summary = r.PlainSummary
		}

		reports = append(reports, trends.Report{
			ID:         r.ID,
			Filename:   r.Filename,
			UploadedAt: uploadedAt,
			Summary:    summary,
		})
	}

	return reports, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login exchanges credentials for an API token and keeps it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse

	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}

	if resp.Token == "" {
		return "", ErrMissingToken
	}

	c.token = resp.Token

	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w %d: %s", errUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

var uploadedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// ParseUploadedAt accepts the timestamp shapes the backend emits: RFC 3339,
// RFC 1123 (HTTP dates) and naive ISO timestamps, which are taken as UTC.
func ParseUploadedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range uploadedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", errUnparseableUpload, value)
}
