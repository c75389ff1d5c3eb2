// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request hardening.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/amanifoundation/amani-go/internal/auth"
	"github.com/amanifoundation/amani-go/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity holds the decoded auth.Identity for the request.
const ContextKeyIdentity ContextKey = "identity"

// Auth creates middleware that requires a signed-in session. Anonymous
// requests are redirected to the login page.
func Auth(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.IsAuthenticated(r.Context()) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadIdentity creates middleware that decodes the session's bearer token
// and puts the resulting identity into the request context. A token that no
// longer decodes is useless for API calls, so the session is destroyed and
// the request redirected to login. Use after Auth.
func LoadIdentity(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := store.Token(r.Context())
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := auth.Decode(token)
			if err != nil {
				slog.Warn("destroying session with unusable token",
					"error", err,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				_ = store.Logout(r.Context())
				store.SetFlash(r.Context(), "Your session has expired. Please sign in again.", "error")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity retrieves the decoded identity from the request context.
// Returns nil if no identity is in context.
func Identity(r *http.Request) *auth.Identity {
	id, ok := r.Context().Value(ContextKeyIdentity).(auth.Identity)
	if !ok {
		return nil
	}
	return &id
}

// RequireAdmin creates middleware that admits only the admin role. The role
// check is an exact string match. Signed-in users with any other role are
// sent to the public home page, not shown an error. Use after LoadIdentity.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := Identity(r)
			if id == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if !id.IsAdmin() {
				slog.Warn("admin area access denied",
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", id.ID,
					"user_role", id.Role,
					"remote_addr", r.RemoteAddr,
				)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
