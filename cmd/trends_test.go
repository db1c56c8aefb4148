// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amangit2224/medlens/client"
)

func newHistoryServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	})
	mux.HandleFunc("GET /api/report/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = w.Write([]byte(`{"reports":[
			{"id":"2","uploaded_at":"2024-02-01T09:00:00Z","plain_language_summary":"**Glucose:** 120 mg/dL\n**Hemoglobin:** 14 g/dL"},
			{"id":"1","uploaded_at":"2024-01-01T09:00:00Z","plain_summary":"**Glucose:** 100 mg/dL"}
		]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchAndPrintTrends(t *testing.T) {
	t.Parallel()

	srv := newHistoryServer(t)

	c, err := client.New(srv.URL, "")
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	result := fetchTrends(context.Background(), c, "amna", "correct-horse")
	if result.Empty() {
		t.Fatal("expected trends from history")
	}

	var out bytes.Buffer
	if err := printTrends(&out, result, ""); err != nil {
		t.Fatalf("printTrends failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Glucose", "Hemoglobin", "120 mg/dL", "20.0%", "Glucose has increased by 20.0% (from 100 to 120 mg/dL)."} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestPrintTrendsSingleTest(t *testing.T) {
	t.Parallel()

	srv := newHistoryServer(t)

	c, _ := client.New(srv.URL, "issued-token")
	result := fetchTrends(context.Background(), c, "", "")

	var out bytes.Buffer
	if err := printTrends(&out, result, "Glucose"); err != nil {
		t.Fatalf("printTrends failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"01/01/2024", "01/02/2024", "100 mg/dL"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}

	if strings.Contains(text, "Hemoglobin") {
		t.Fatalf("expected only Glucose readings, got:\n%s", text)
	}
}

func TestFetchTrendsFailureIsEmpty(t *testing.T) {
	t.Parallel()

	srv := newHistoryServer(t)

	c, _ := client.New(srv.URL, "")

	if result := fetchTrends(context.Background(), c, "amna", "wrong"); !result.Empty() {
		t.Fatalf("expected empty result after failed login, got %v", result.Order)
	}

	if result := fetchTrends(context.Background(), c, "", ""); !result.Empty() {
		t.Fatalf("expected empty result after unauthorized fetch, got %v", result.Order)
	}

	var out bytes.Buffer
	if err := printTrends(&out, fetchTrends(context.Background(), c, "", ""), ""); err != nil {
		t.Fatalf("printTrends failed: %v", err)
	}

	if strings.TrimSpace(out.String()) != noTestData {
		t.Fatalf("expected %q, got %q", noTestData, out.String())
	}
}
