/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flamego/session"
	"github.com/jackc/pgx/v5"
)

// PostgresSessionConfig contains options for the PostgreSQL session store
type PostgresSessionConfig struct {
	// Lifetime is how long a session may sit idle before it expires.
	// Default is 7 days.
	Lifetime time.Duration
	// TableName is the name of the session table. Default is "flamego_sessions".
	TableName string
	// Encoder is the encoder to encode session data. Default is session.GobEncoder.
	Encoder session.Encoder
	// Decoder is the decoder to decode session data. Default is session.GobDecoder.
	Decoder session.Decoder
}

// PostgresSessionStore implements session.Store on top of the pool.
type PostgresSessionStore struct {
	config  PostgresSessionConfig
	encoder session.Encoder
	decoder session.Decoder
}

// PostgresSessionIniter returns the Initer for the PostgreSQL session store
func PostgresSessionIniter() session.Initer {
	return func(_ context.Context, args ...interface{}) (session.Store, error) {
		var config PostgresSessionConfig

		if len(args) > 0 {
			var ok bool

			config, ok = args[0].(PostgresSessionConfig)
			if !ok {
				return nil, errInvalidSessionConfig
			}
		}

		if config.Lifetime == 0 {
			config.Lifetime = 7 * 24 * time.Hour
		}
		if config.TableName == "" {
			config.TableName = "flamego_sessions"
		}
		if config.Encoder == nil {
			config.Encoder = session.GobEncoder
		}
		if config.Decoder == nil {
			config.Decoder = session.GobDecoder
		}

		return &PostgresSessionStore{
			config:  config,
			encoder: config.Encoder,
			decoder: config.Decoder,
		}, nil
	}
}

// Cookies are written by the session middleware.
func noopIDWriter(http.ResponseWriter, *http.Request, string) {}

// Exist returns true if the session with given ID exists and hasn't expired
func (s *PostgresSessionStore) Exist(ctx context.Context, sid string) bool {
	var exists bool

	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+s.config.TableName+` WHERE id = $1 AND expires_at > NOW())`,
		sid,
	).Scan(&exists)

	return err == nil && exists
}

// Read returns the session with given ID, or a fresh session with that ID
// when none is stored or the stored data cannot be decoded.
func (s *PostgresSessionStore) Read(ctx context.Context, sid string) (session.Session, error) {
	var data []byte

	err := pool.QueryRow(ctx,
		`SELECT data FROM `+s.config.TableName+` WHERE id = $1 AND expires_at > NOW()`,
		sid,
	).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if len(data) == 0 {
		return session.NewBaseSession(sid, s.encoder, noopIDWriter), nil
	}

	values, err := s.decoder(data)
	if err != nil {
		logger.Warn("Discarding undecodable session", "error", err)
		return session.NewBaseSession(sid, s.encoder, noopIDWriter), nil
	}

	return session.NewBaseSessionWithData(sid, s.encoder, noopIDWriter, values), nil
}

// Destroy deletes session with given ID from the session store completely
func (s *PostgresSessionStore) Destroy(ctx context.Context, sid string) error {
	_, err := pool.Exec(ctx, `DELETE FROM `+s.config.TableName+` WHERE id = $1`, sid)
	return err
}

// Touch updates the expiry time of the session with given ID
func (s *PostgresSessionStore) Touch(ctx context.Context, sid string) error {
	_, err := pool.Exec(ctx,
		`UPDATE `+s.config.TableName+` SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(s.config.Lifetime),
		sid,
	)

	return err
}

// Save persists session data to the session store
func (s *PostgresSessionStore) Save(ctx context.Context, sess session.Session) error {
	data, err := sess.Encode()
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO `+s.config.TableName+` (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at`,
		sess.ID(),
		data,
		time.Now().Add(s.config.Lifetime),
	)

	return err
}

// GC removes expired sessions.
func (s *PostgresSessionStore) GC(ctx context.Context) error {
	_, err := pool.Exec(ctx, `DELETE FROM `+s.config.TableName+` WHERE expires_at < NOW()`)
	return err
}
