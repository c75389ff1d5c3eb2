// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session manages browser sessions backed by the local SQLite
// database. The session is the only durable home of the backend bearer
// token: it is written on login, cleared on logout, and read everywhere
// else.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys. keyToken is the single source of truth for the signed-in
// state: a session without it is anonymous.
const (
	keyToken     = "api_token"
	keyFlash     = "flash"
	keyFlashType = "flash_type"
)

// New creates a session manager backed by the sessions table in db.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	if !isDev {
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}

// Store wraps the session manager with the token and flash operations the
// handlers need. Only Login and Logout mutate the token.
type Store struct {
	sm *scs.SessionManager
}

// NewStore wraps sm.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Manager returns the underlying session manager for middleware wiring.
func (s *Store) Manager() *scs.SessionManager {
	return s.sm
}

// Login stores the bearer token in the session. The session token is
// renewed first to prevent session fixation.
func (s *Store) Login(ctx context.Context, token string) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return err
	}
	s.sm.Put(ctx, keyToken, token)
	return nil
}

// Logout destroys the session and with it the stored token.
func (s *Store) Logout(ctx context.Context) error {
	return s.sm.Destroy(ctx)
}

// Token returns the stored bearer token, or "" for an anonymous session.
func (s *Store) Token(ctx context.Context) string {
	return s.sm.GetString(ctx, keyToken)
}

// IsAuthenticated reports whether the session holds a bearer token.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.sm.Exists(ctx, keyToken)
}

// SetFlash stores a one-shot notification message. kind is a CSS-level
// hint, "success" or "error".
func (s *Store) SetFlash(ctx context.Context, message, kind string) {
	s.sm.Put(ctx, keyFlash, message)
	s.sm.Put(ctx, keyFlashType, kind)
}

// PopFlash returns and clears the pending flash message, if any.
func (s *Store) PopFlash(ctx context.Context) (message, kind string) {
	message = s.sm.PopString(ctx, keyFlash)
	kind = s.sm.PopString(ctx, keyFlashType)
	return message, kind
}
