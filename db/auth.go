/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// dummyHash is compared against when a username does not exist so that
// lookups take the same time either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("medlens-placeholder"), bcrypt.DefaultCost)

// CountUsers returns the number of users.
func CountUsers(ctx context.Context) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// CreateUser registers a new account with a bcrypt password hash.
func CreateUser(ctx context.Context, username, password string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user User

	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at, updated_at
	`

	if err := pool.QueryRow(ctx, query, username, string(hash)).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("Created user", "user_id", user.ID, "username", user.Username)

	return &user, nil
}

// AuthenticateUser returns the user when password matches. Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func AuthenticateUser(ctx context.Context, username, password string) (*User, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByUsername looks a user up case-insensitively.
func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return getUser(ctx, `WHERE LOWER(username) = LOWER($1)`, strings.TrimSpace(username))
}

// GetUserByID returns a user by ID.
func GetUserByID(ctx context.Context, id string) (*User, error) {
	return getUser(ctx, `WHERE id = $1`, id)
}

func getUser(ctx context.Context, where string, arg any) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var user User

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
	` + where

	if err := pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// DeleteUser removes a user and, by cascade, their reports.
func DeleteUser(ctx context.Context, userID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
