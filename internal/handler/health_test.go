// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/version"
)

func healthTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHealthAllChecksHealthy(t *testing.T) {
	fb := newFakeBackend(t, nil)
	client, err := api.New(fb.srv.URL)
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	h := NewHealthHandler(healthTestDB(t), client, version.Info{Version: "1.0.0"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %q, want healthy", status.Checks["database"].Status)
	}
	if status.Checks["backend"].Status != "healthy" {
		t.Errorf("backend check = %q, want healthy", status.Checks["backend"].Status)
	}
	if status.System != nil {
		t.Error("system info should be omitted without verbose")
	}
}

func TestHealthVerboseIncludesSystemInfo(t *testing.T) {
	fb := newFakeBackend(t, nil)
	client, err := api.New(fb.srv.URL)
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	h := NewHealthHandler(healthTestDB(t), client, version.Info{Version: "1.0.0"})

	req := httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.System == nil {
		t.Fatal("verbose response should include system info")
	}
	if status.System.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want >= 1", status.System.NumCPU)
	}
}

func TestHealthBackendDownIsDegraded(t *testing.T) {
	client, err := api.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	h := NewHealthHandler(healthTestDB(t), client, version.Info{Version: "1.0.0"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("status = %q, want degraded", status.Status)
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %q, want healthy when only backend is down", status.Checks["database"].Status)
	}
}

func TestLiveness(t *testing.T) {
	fb := newFakeBackend(t, nil)
	client, err := api.New(fb.srv.URL)
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	h := NewHealthHandler(healthTestDB(t), client, version.Info{})

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["status"] != "alive" {
		t.Errorf("status = %q, want alive", resp["status"])
	}
}

func TestReadiness(t *testing.T) {
	fb := newFakeBackend(t, nil)
	client, err := api.New(fb.srv.URL)
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	db := healthTestDB(t)
	h := NewHealthHandler(db, client, version.Info{})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	_ = db.Close()
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status after db close = %d, want 503", rec.Code)
	}
}
