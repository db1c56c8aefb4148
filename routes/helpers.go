/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

const (
	siteTitle   = "MedLens"
	defaultNext = "/trends"
)

func setPageTitle(data template.Data, title string) {
	if title == "" {
		data["PageTitle"] = siteTitle
		return
	}

	data["PageTitle"] = title + " · " + siteTitle
}

func writeJSON(c flamego.Context, status int, payload any) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(payload); err != nil {
		logger.Error("Error encoding JSON response", "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// sanitizeNextPath only allows local absolute paths.
func sanitizeNextPath(raw string) string {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "",
		!strings.HasPrefix(raw, "/"),
		strings.HasPrefix(raw, "//"),
		strings.HasPrefix(raw, "/\\"),
		strings.Contains(raw, "://"),
		strings.ContainsAny(raw, "\r\n"):
		return defaultNext
	}

	return raw
}
