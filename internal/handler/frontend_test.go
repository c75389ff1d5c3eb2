// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newFrontend(t *testing.T, fb *fakeBackend) http.Handler {
	t.Helper()
	sessions := testSessions(t)
	h := NewFrontendHandler(fb.directory(t), testRenderer(t, sessions), sessions)
	r := chi.NewRouter()
	r.Group(h.Routes)
	return withSession(sessions, r)
}

func frontendGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func frontendPost(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHomeSurvivesFailedSections(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/get":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"}]}`))
		case "/featured-events/get":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})
	h := newFrontend(t, fb)

	rec := frontendGet(t, h, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite failed events fetch", rec.Code)
	}
	// Only the three most recent projects make the landing page.
	if got := rec.Body.String(); !strings.Contains(got, "home:3") {
		t.Errorf("body = %q, want three projects", got)
	}
}

func TestProjectByRefUsesIDOnly(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42","title":"Clean Water"}}`))
	})
	h := newFrontend(t, fb)

	rec := frontendGet(t, h, "/projects/42~clean-water")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, "Clean Water") {
		t.Errorf("body = %q, want project title", got)
	}
	calls := fb.seen()
	if len(calls) != 1 || calls[0].Path != "/projects/get/42" {
		t.Errorf("backend calls = %v, want single GET /projects/get/42", calls)
	}
}

func TestProjectByRefHyphenatedID(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"550e8400-e29b-41d4-a716-446655440000","title":"Clean Water"}}`))
	})
	h := newFrontend(t, fb)

	rec := frontendGet(t, h, "/projects/550e8400-e29b-41d4-a716-446655440000~clean-water")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	calls := fb.seen()
	if len(calls) != 1 || calls[0].Path != "/projects/get/550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("backend calls = %v, want the full UUID in the path", calls)
	}
}

func TestProjectNotFound(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Project not found"}`))
	})
	h := newFrontend(t, fb)

	rec := frontendGet(t, h, "/projects/99~gone")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestOpportunitiesShowsActiveOnly(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"1","title":"Field Officer","isActive":true},
			{"id":"2","title":"Old Posting","isActive":false},
			{"id":"3","title":"Driver","isActive":true}
		]}`))
	})
	h := newFrontend(t, fb)

	rec := frontendGet(t, h, "/opportunities")

	body := rec.Body.String()
	if !strings.Contains(body, "Field Officer;") || !strings.Contains(body, "Driver;") {
		t.Errorf("body = %q, want active openings", body)
	}
	if strings.Contains(body, "Old Posting") {
		t.Errorf("body = %q, inactive openings must not be listed", body)
	}
}

func TestContactSubmit(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newFrontend(t, fb)

	rec := frontendPost(t, h, "/contact", url.Values{
		"name":    {"Asha"},
		"email":   {"asha@example.org"},
		"subject": {"Hello"},
		"message": {"Keep up the good work."},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	calls := fb.seen()
	if len(calls) != 1 || calls[0].Method != http.MethodPost || calls[0].Path != "/contact/add" {
		t.Errorf("backend calls = %v, want single POST /contact/add", calls)
	}
}

func TestContactSubmitMissingFields(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newFrontend(t, fb)

	rec := frontendPost(t, h, "/contact", url.Values{"name": {"Asha"}})

	if loc := rec.Header().Get("Location"); loc != redirectContact {
		t.Errorf("Location = %q, want back to contact", loc)
	}
	if calls := fb.seen(); len(calls) != 0 {
		t.Errorf("backend calls = %v, want none for incomplete form", calls)
	}
}

func TestGetInvolvedSubmissions(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		form     url.Values
		wantPath string
	}{
		{
			name:     "volunteer",
			path:     "/get-involved/volunteer",
			form:     url.Values{"name": {"Asha"}, "email": {"asha@example.org"}, "interest": {"Education"}},
			wantPath: "/volunteers/add",
		},
		{
			name:     "sponsor",
			path:     "/get-involved/sponsor",
			form:     url.Values{"name": {"Asha"}, "email": {"asha@example.org"}, "organization": {"Acme"}},
			wantPath: "/sponsorships/add",
		},
		{
			name:     "partner",
			path:     "/get-involved/partner",
			form:     url.Values{"organization": {"Acme"}, "email": {"info@acme.org"}, "contactPerson": {"Asha"}},
			wantPath: "/partnerships/add",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, nil)
			h := newFrontend(t, fb)

			rec := frontendPost(t, h, tt.path, tt.form)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != redirectGetInvolved {
				t.Errorf("Location = %q, want %q", loc, redirectGetInvolved)
			}
			calls := fb.seen()
			if len(calls) != 1 || calls[0].Method != http.MethodPost || calls[0].Path != tt.wantPath {
				t.Errorf("backend calls = %v, want single POST %s", calls, tt.wantPath)
			}
		})
	}
}

func TestGetInvolvedSubmitFailureFlashesBackendMessage(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Email already registered."}`))
	})
	sessions := testSessions(t)
	fh := NewFrontendHandler(fb.directory(t), testRenderer(t, sessions), sessions)
	r := chi.NewRouter()
	r.Group(fh.Routes)
	h := withSession(sessions, r)

	rec := frontendPost(t, h, "/get-involved/volunteer", url.Values{
		"name":  {"Asha"},
		"email": {"asha@example.org"},
	})

	if loc := rec.Header().Get("Location"); loc != redirectGetInvolved {
		t.Fatalf("Location = %q, want %q", loc, redirectGetInvolved)
	}

	req := httptest.NewRequest(http.MethodGet, redirectGetInvolved, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	var flash, kind string
	probe := sessions.Manager().LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flash, kind = sessions.PopFlash(r.Context())
	}))
	probe.ServeHTTP(httptest.NewRecorder(), req)

	if flash != "Email already registered." {
		t.Errorf("flash = %q, want backend message verbatim", flash)
	}
	if kind != "error" {
		t.Errorf("flash kind = %q, want error", kind)
	}
}

func TestGalleryAndEvents(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"1"},{"id":"2"}]}`))
	})
	h := newFrontend(t, fb)

	if rec := frontendGet(t, h, "/gallery"); !strings.Contains(rec.Body.String(), "2") {
		t.Errorf("gallery body = %q, want item count", rec.Body.String())
	}
	if rec := frontendGet(t, h, "/events"); !strings.Contains(rec.Body.String(), "2") {
		t.Errorf("events body = %q, want item count", rec.Body.String())
	}
}
