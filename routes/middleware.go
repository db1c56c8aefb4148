/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

// CSRFInjector makes the CSRF token available to every form.
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// NoCacheHeaders keeps report pages out of shared caches and search indexes.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow")
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Referrer-Policy", "same-origin")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
		}

		c.Next()
	}
}

// LimitRequestBody caps the request body at limit bytes. It must run before
// anything that parses the form.
func LimitRequestBody(limit int64) flamego.Handler {
	return func(c flamego.Context) {
		r := c.Request().Request
		r.Body = http.MaxBytesReader(c.ResponseWriter(), r.Body, limit)
		c.Next()
	}
}
