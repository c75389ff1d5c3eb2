// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amanifoundation/amani-go/internal/logging"
)

func TestActivityShowsRetainedWarnings(t *testing.T) {
	ring := logging.NewRingHandler(slog.NewTextHandler(io.Discard, nil))
	logger := slog.New(ring)
	logger.Info("routine request")
	logger.Warn("upstream slow")
	logger.Error("upstream down")

	sessions := testSessions(t)
	h := NewActivityHandler(ring, testRenderer(t, sessions))

	req := httptest.NewRequest(http.MethodGet, "/admin/activity", nil)
	rec := httptest.NewRecorder()
	withSession(sessions, http.HandlerFunc(h.Activity)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "upstream slow;") || !strings.Contains(body, "upstream down;") {
		t.Errorf("body = %q, want retained warnings and errors", body)
	}
	if strings.Contains(body, "routine request") {
		t.Errorf("body = %q, info entries should not be retained", body)
	}
}
