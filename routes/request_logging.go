/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/amangit2224/medlens/logging"
)

var requestLogger = logging.Logger(logging.SourceWebRequest)

// RequestLogger logs request metadata and timing for each HTTP request.
func RequestLogger(c flamego.Context, s session.Session) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("request", fields...)
}

// APIRequestLogger logs API requests, which carry no session.
func APIRequestLogger(c flamego.Context) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	requestLogger.Info("request",
		"event", "api_request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
	)
}

func logAccessDenied(c flamego.Context, s session.Session, reason string, redirect string, extra ...interface{}) {
	fields := []interface{}{
		"event", "access_denied",
		"reason", reason,
	}
	if redirect != "" {
		fields = append(fields, "redirect", redirect)
	}

	fields = append(fields, baseRequestFields(c, s)...)
	fields = append(fields, extra...)

	requestLogger.Warn("access denied", fields...)
}

func baseRequestFields(c flamego.Context, s session.Session) []interface{} {
	u := NewUserSession(s)

	fields := []interface{}{
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
		"user_agent", c.Request().UserAgent(),
		"authenticated", u.Authenticated(),
	}
	if userID, ok := u.UserID(); ok {
		fields = append(fields, "user_id", userID)
	}

	return fields
}

func clientIP(c flamego.Context) string {
	forwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	return c.RemoteAddr()
}
