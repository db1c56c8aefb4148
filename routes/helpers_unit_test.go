// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/amangit2224/medlens/db"
)

var errTestBoom = errors.New("boom")

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	s.id += "-rotated"
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

func newLoggedInSession() (*testSession, *db.User) {
	s := newTestSession()
	user := &db.User{ID: uuid.New(), Username: "amna"}
	NewUserSession(s).Login(user)

	return s, user
}

func newSessionTestApp(s session.Session) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.Next()
	})

	return f
}

func performFormPOST(t *testing.T, f *flamego.Flame, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther && rec.Code != http.StatusFound {
		t.Fatalf("expected redirect status, got %d", rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantMessage string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || msg.Message != wantMessage {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func TestSetFlashHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     func(session.Session, string)
		wantTyp FlashType
	}{
		{name: "error", set: SetErrorFlash, wantTyp: FlashError},
		{name: "success", set: SetSuccessFlash, wantTyp: FlashSuccess},
		{name: "warning", set: SetWarningFlash, wantTyp: FlashWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			tt.set(s, "hello")

			assertFlash(t, s, tt.wantTyp, "hello")
		})
	}
}

func TestFlashInjector(t *testing.T) {
	t.Parallel()

	handler, ok := FlashInjector().(func(session.Flash, template.Data))
	if !ok {
		t.Fatalf("unexpected FlashInjector handler type")
	}

	data := template.Data{}
	handler(FlashMessage{Type: FlashSuccess, Message: "saved"}, data)

	if msg, ok := data["Flash"].(FlashMessage); !ok || msg.Message != "saved" {
		t.Fatalf("unexpected Flash value: %#v", data["Flash"])
	}

	empty := template.Data{}
	handler(nil, empty)

	if _, ok := empty["Flash"]; ok {
		t.Fatalf("expected no flash without a message")
	}
}

func TestCSRFInjector(t *testing.T) {
	t.Parallel()

	handler, ok := CSRFInjector().(func(csrf.CSRF, template.Data))
	if !ok {
		t.Fatalf("unexpected CSRFInjector handler type")
	}

	data := template.Data{}
	handler(testCSRF{token: "csrf-123"}, data)

	if got, ok := data["csrf_token"].(string); !ok || got != "csrf-123" {
		t.Fatalf("unexpected csrf_token value: %#v", data["csrf_token"])
	}
}

func TestNoCacheHeaders(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoCacheHeaders())
	f.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Post("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	getRec := httptest.NewRecorder()
	f.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := getRec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control for GET: %q", got)
	}

	if got := getRec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("unexpected X-Content-Type-Options: %q", got)
	}

	postRec := httptest.NewRecorder()
	f.ServeHTTP(postRec, httptest.NewRequest(http.MethodPost, "/", nil))

	if got := postRec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control for POST, got %q", got)
	}
}

func TestLimitRequestBody(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Post("/", LimitRequestBody(8), func(c flamego.Context) {
		if _, err := io.ReadAll(c.Request().Request.Body); err != nil {
			c.ResponseWriter().WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}

		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected small body to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long for the limit")))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected large body to be rejected, got %d", rec.Code)
	}
}

func TestSanitizeNextPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: defaultNext},
		{in: "/history", want: "/history"},
		{in: " /trends?test=Glucose ", want: "/trends?test=Glucose"},
		{in: "https://evil.test/", want: defaultNext},
		{in: "//evil.test", want: defaultNext},
		{in: "/\\evil.test", want: defaultNext},
		{in: "history", want: defaultNext},
		{in: "/a\r\nSet-Cookie: x", want: defaultNext},
	}

	for _, tt := range tests {
		if got := sanitizeNextPath(tt.in); got != tt.want {
			t.Fatalf("sanitizeNextPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserSession(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	u := NewUserSession(s)

	if u.Authenticated() {
		t.Fatalf("expected anonymous session")
	}

	user := &db.User{ID: uuid.New(), Username: "omar"}
	u.Login(user)
	u.SetDarkMode(true)

	if !u.Authenticated() || u.Username() != "omar" {
		t.Fatalf("expected logged-in session, got %#v", s.data)
	}

	if id, ok := u.UserID(); !ok || id != user.ID.String() {
		t.Fatalf("unexpected user id %q", id)
	}

	u.Logout()

	if u.Authenticated() || u.Username() != "" {
		t.Fatalf("expected session to be cleared")
	}

	if !u.DarkMode() {
		t.Fatalf("expected theme preference to survive logout")
	}
}

func TestUserContextInjector(t *testing.T) {
	t.Parallel()

	s, _ := newLoggedInSession()

	handler, ok := UserContextInjector().(func(session.Session, template.Data))
	if !ok {
		t.Fatalf("unexpected UserContextInjector handler type")
	}

	data := template.Data{}
	handler(s, data)

	if data["IsAuthenticated"] != true || data["Username"] != "amna" || data["DarkMode"] != false {
		t.Fatalf("unexpected template data %#v", data)
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	anonymous := newTestSession()
	f := newSessionTestApp(anonymous)
	f.Get("/history", RequireAuth, func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	assertRedirect(t, rec, "/login")

	loggedIn, _ := newLoggedInSession()
	f = newSessionTestApp(loggedIn)
	f.Get("/history", RequireAuth, func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
}

func TestSetTheme(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f := newSessionTestApp(s)
	f.Post("/preferences/theme", SetTheme)

	rec := performFormPOST(t, f, "/preferences/theme", url.Values{"theme": {"dark"}, "next": {"/history"}})
	assertRedirect(t, rec, "/history")

	if !NewUserSession(s).DarkMode() {
		t.Fatalf("expected dark mode to be enabled")
	}

	req := httptest.NewRequest(http.MethodPost, "/preferences/theme", nil)
	req.Header.Set("Referer", "http://localhost:8080/trends?test=Glucose")

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/trends?test=Glucose")

	if NewUserSession(s).DarkMode() {
		t.Fatalf("expected toggle to disable dark mode")
	}
}
