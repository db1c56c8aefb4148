/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/amangit2224/medlens/db"
)

const (
	apiTokenIssuer     = "medlens"
	minJWTSecretLength = 32
)

// APIUser is the caller of an authenticated API request.
type APIUser struct {
	ID       string
	Username string
}

type apiClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret []byte, ttl time.Duration) (*tokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errJWTSecretRequired
	}

	if len(secret) < minJWTSecretLength {
		return nil, errJWTSecretTooShort
	}

	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &tokenIssuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for user.
func (i *tokenIssuer) Issue(user *db.User) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := apiClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    apiTokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks the signature, issuer and expiry of raw.
func (i *tokenIssuer) Verify(raw string) (APIUser, error) {
	claims := &apiClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSignature
		}

		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(apiTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return APIUser{}, fmt.Errorf("%w: %w", errInvalidAPIToken, err)
	}

	if claims.Subject == "" {
		return APIUser{}, errInvalidAPIToken
	}

	return APIUser{ID: claims.Subject, Username: claims.Username}, nil
}

func bearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingBearerToken
	}

	return strings.TrimSpace(token), nil
}

// RequireAPIToken authenticates API requests and maps the APIUser.
func RequireAPIToken(c flamego.Context) {
	if apiTokens == nil {
		writeJSONError(c, http.StatusServiceUnavailable, "API authentication is not configured")
		return
	}

	raw, err := bearerToken(c.Request().Request)
	if err != nil {
		writeJSONError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := apiTokens.Verify(raw)
	if err != nil {
		requestLogger.Warn("access denied",
			"event", "access_denied",
			"reason", "invalid_token",
			"path", c.Request().URL.Path,
			"ip", clientIP(c),
			"error", err,
		)

		if errors.Is(err, jwt.ErrTokenExpired) {
			writeJSONError(c, http.StatusUnauthorized, "token expired")
			return
		}

		writeJSONError(c, http.StatusUnauthorized, "invalid token")

		return
	}

	c.Map(user)
	c.Next()
}
