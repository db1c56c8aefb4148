/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"net/url"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
)

// SetTheme stores the dark mode preference and returns to the page the
// form was posted from.
func SetTheme(c flamego.Context, s session.Session) {
	u := NewUserSession(s)

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect(defaultNext, http.StatusSeeOther)

		return
	}

	switch c.Request().Form.Get("theme") {
	case "dark":
		u.SetDarkMode(true)
	case "light":
		u.SetDarkMode(false)
	default:
		u.SetDarkMode(!u.DarkMode())
	}

	c.Redirect(returnPath(c.Request().Form.Get("next"), c.Request().Referer()), http.StatusSeeOther)
}

// returnPath prefers an explicit next path, then the local part of the
// referer.
func returnPath(next, referer string) string {
	if next != "" {
		return sanitizeNextPath(next)
	}

	parsed, err := url.Parse(referer)
	if err != nil || parsed.Path == "" {
		return defaultNext
	}

	path := parsed.EscapedPath()
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}

	return sanitizeNextPath(path)
}
