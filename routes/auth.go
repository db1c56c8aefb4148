/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/amangit2224/medlens/db"
)

var (
	authenticateUserFn = db.AuthenticateUser
	createUserFn       = db.CreateUser
)

// LoginForm renders the login page
func LoginForm(c flamego.Context, t template.Template, data template.Data) {
	setPageTitle(data, "Log in")
	data["HeaderOnly"] = true
	data["Next"] = sanitizeNextPath(c.Query("next"))
	t.HTML(http.StatusOK, "login")
}

// Login checks credentials and starts an authenticated session.
func Login(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	form := c.Request().Form
	username := strings.TrimSpace(form.Get("username"))
	password := form.Get("password")

	user, err := authenticateUserFn(c.Request().Context(), username, password)
	if err != nil {
		if !errors.Is(err, db.ErrInvalidCredentials) {
			logger.Error("Failed to authenticate user", "error", err)
		}

		logAccessDenied(c, s, "invalid_credentials", "/login", "username", username)
		SetErrorFlash(s, "Invalid username or password")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Failed to rotate session ID", "error", err)
		SetErrorFlash(s, "Failed to start session")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	NewUserSession(s).Login(user)
	logger.Info("User logged in", "user_id", user.ID)

	c.Redirect(sanitizeNextPath(form.Get("next")), http.StatusSeeOther)
}

// SignupForm renders the account creation page.
func SignupForm(t template.Template, data template.Data) {
	setPageTitle(data, "Sign up")
	data["HeaderOnly"] = true
	data["MinPasswordLength"] = db.MinPasswordLength
	t.HTML(http.StatusOK, "signup")
}

// Signup creates an account and logs it in.
func Signup(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/signup", http.StatusSeeOther)

		return
	}

	form := c.Request().Form
	password := form.Get("password")

	if password != form.Get("password_confirm") {
		SetErrorFlash(s, "Passwords do not match")
		c.Redirect("/signup", http.StatusSeeOther)

		return
	}

	user, err := createUserFn(c.Request().Context(), form.Get("username"), password)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrUsernameRequired):
			SetErrorFlash(s, "Username is required")
		case errors.Is(err, db.ErrPasswordTooShort):
			SetErrorFlash(s, "Password is too short")
		case errors.Is(err, db.ErrUsernameTaken):
			SetErrorFlash(s, "That username is already taken")
		default:
			logger.Error("Failed to create user", "error", err)
			SetErrorFlash(s, "Failed to create account")
		}

		c.Redirect("/signup", http.StatusSeeOther)

		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Failed to rotate session ID", "error", err)
	}

	NewUserSession(s).Login(user)
	SetSuccessFlash(s, "Welcome to MedLens! Upload a report to get started.")
	c.Redirect("/upload", http.StatusSeeOther)
}

// Logout ends the session.
func Logout(s session.Session, c flamego.Context) {
	NewUserSession(s).Logout()
	c.Redirect("/login", http.StatusSeeOther)
}

func sessionUserID(s session.Session) (string, error) {
	userID, ok := NewUserSession(s).UserID()
	if !ok {
		return "", errSessionUserMissing
	}

	return userID, nil
}
