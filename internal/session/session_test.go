// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}

func TestStoreTokenLifecycle(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(New(db, true))

	ctx, err := store.Manager().Load(t.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	if store.IsAuthenticated(ctx) {
		t.Error("fresh session should be anonymous")
	}
	if store.Token(ctx) != "" {
		t.Error("fresh session should have no token")
	}

	if err := store.Login(ctx, "tok-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !store.IsAuthenticated(ctx) {
		t.Error("session should be authenticated after login")
	}
	if got := store.Token(ctx); got != "tok-abc" {
		t.Errorf("Token() = %q, want tok-abc", got)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if store.IsAuthenticated(ctx) {
		t.Error("session should be anonymous after logout")
	}
}

func TestStoreFlash(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(New(db, true))

	ctx, err := store.Manager().Load(t.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	store.SetFlash(ctx, "Saved.", "success")

	msg, kind := store.PopFlash(ctx)
	if msg != "Saved." || kind != "success" {
		t.Errorf("PopFlash() = (%q, %q), want (Saved., success)", msg, kind)
	}

	// One-shot: a second pop returns nothing.
	msg, kind = store.PopFlash(ctx)
	if msg != "" || kind != "" {
		t.Errorf("second PopFlash() = (%q, %q), want empty", msg, kind)
	}
}
