/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/amangit2224/medlens/db"
)

const (
	sessionKeyAuthenticated = "authenticated"
	sessionKeyUserID        = "user_id"
	sessionKeyUsername      = "username"
	sessionKeyDarkMode      = "dark_mode"
)

// UserSession gives handlers typed access to the values MedLens keeps in
// the session.
type UserSession struct {
	s session.Session
}

// NewUserSession wraps s.
func NewUserSession(s session.Session) UserSession {
	return UserSession{s: s}
}

// Login marks the session as belonging to user.
func (u UserSession) Login(user *db.User) {
	u.s.Set(sessionKeyAuthenticated, true)
	u.s.Set(sessionKeyUserID, user.ID.String())
	u.s.Set(sessionKeyUsername, user.Username)
}

// Logout clears the user but keeps display preferences.
func (u UserSession) Logout() {
	u.s.Delete(sessionKeyAuthenticated)
	u.s.Delete(sessionKeyUserID)
	u.s.Delete(sessionKeyUsername)
}

// Authenticated reports whether a user is logged in.
func (u UserSession) Authenticated() bool {
	authenticated, ok := u.s.Get(sessionKeyAuthenticated).(bool)
	if !ok || !authenticated {
		return false
	}

	_, ok = u.UserID()

	return ok
}

// UserID returns the logged-in user's ID.
func (u UserSession) UserID() (string, bool) {
	userID, ok := u.s.Get(sessionKeyUserID).(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}

// Username returns the logged-in user's name, or "".
func (u UserSession) Username() string {
	username, _ := u.s.Get(sessionKeyUsername).(string)
	return username
}

// DarkMode reports the theme preference.
func (u UserSession) DarkMode() bool {
	dark, _ := u.s.Get(sessionKeyDarkMode).(bool)
	return dark
}

// SetDarkMode stores the theme preference.
func (u UserSession) SetDarkMode(dark bool) {
	u.s.Set(sessionKeyDarkMode, dark)
}

// UserContextInjector exposes the session user and theme to templates.
func UserContextInjector() flamego.Handler {
	return func(s session.Session, data template.Data) {
		u := NewUserSession(s)

		data["IsAuthenticated"] = u.Authenticated()
		data["Username"] = u.Username()
		data["DarkMode"] = u.DarkMode()
	}
}

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth(s session.Session, c flamego.Context) {
	if !NewUserSession(s).Authenticated() {
		logAccessDenied(c, s, "not_authenticated", "/login")
		c.Redirect("/login")

		return
	}

	c.Next()
}

// RequireGuest sends logged-in users away from the login and signup pages.
func RequireGuest(s session.Session, c flamego.Context) {
	if NewUserSession(s).Authenticated() {
		c.Redirect("/trends")
		return
	}

	c.Next()
}
