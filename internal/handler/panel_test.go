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

// newProjectsPanel mounts the projects panel over the fake backend.
func newProjectsPanel(t *testing.T, fb *fakeBackend) http.Handler {
	t.Helper()
	sessions := testSessions(t)
	renderer := testRenderer(t, sessions)
	panels := NewPanels(fb.directory(t), renderer, sessions)

	r := chi.NewRouter()
	r.Route("/admin/projects", panels.Projects.Routes)
	return withSession(sessions, r)
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPanelList(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"p1","title":"Water Wells","category":"water","status":"ongoing"},
			{"id":"p2","title":"School Kits","category":"education","status":"planned"}
		]}`))
	})
	h := newProjectsPanel(t, fb)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "|p1") || !strings.Contains(body, "|p2") {
		t.Errorf("body = %q, want both rows", body)
	}

	calls := fb.seen()
	if len(calls) != 1 || calls[0] != (backendCall{"GET", "/projects/get"}) {
		t.Errorf("backend calls = %v", calls)
	}
}

func TestPanelListBackendDown(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"upstream offline"}`))
	})
	h := newProjectsPanel(t, fb)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

	// The page still renders, surfacing the backend's message.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream offline") {
		t.Errorf("body = %q, want backend message", rec.Body.String())
	}
}

func TestPanelCreateSuccess(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newProjectsPanel(t, fb)

	rec := postForm(t, h, "/admin/projects", url.Values{
		"title":       {"Water Wells"},
		"category":    {"water"},
		"description": {"Dig wells."},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/projects" {
		t.Errorf("Location = %q, want list page", loc)
	}

	calls := fb.seen()
	if len(calls) != 1 || calls[0] != (backendCall{"POST", "/projects/add"}) {
		t.Errorf("backend calls = %v", calls)
	}
}

func TestPanelCreateFailureKeepsDraft(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"A project with this title already exists."}`))
	})
	h := newProjectsPanel(t, fb)

	rec := postForm(t, h, "/admin/projects", url.Values{
		"title":       {"Water Wells"},
		"category":    {"water"},
		"description": {"Dig wells in the region."},
	})

	// No redirect: the form re-renders with the draft and the server's
	// message shown verbatim.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "A project with this title already exists.") {
		t.Errorf("body = %q, want verbatim server message", body)
	}
	if !strings.Contains(body, "title=Water Wells") {
		t.Errorf("body = %q, want submitted title preserved", body)
	}
	if !strings.Contains(body, "description=Dig wells in the region.") {
		t.Errorf("body = %q, want submitted description preserved", body)
	}
}

func TestPanelCreateMissingFields(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newProjectsPanel(t, fb)

	rec := postForm(t, h, "/admin/projects", url.Values{
		"title": {"Water Wells"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want form re-render", rec.Code)
	}
	if len(fb.seen()) != 0 {
		t.Errorf("backend calls = %v, want none for invalid form", fb.seen())
	}
}

func TestPanelUpdate(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newProjectsPanel(t, fb)

	rec := postForm(t, h, "/admin/projects/p1", url.Values{
		"title":       {"Water Wells"},
		"category":    {"water"},
		"description": {"Updated."},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	calls := fb.seen()
	if len(calls) != 1 || calls[0] != (backendCall{"PUT", "/projects/update/p1"}) {
		t.Errorf("backend calls = %v", calls)
	}
}

func TestPanelDeleteRequiresConfirmation(t *testing.T) {
	fb := newFakeBackend(t, nil)
	h := newProjectsPanel(t, fb)

	t.Run("without confirmation no backend call happens", func(t *testing.T) {
		rec := postForm(t, h, "/admin/projects/p1/delete", url.Values{})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if calls := fb.seen(); len(calls) != 0 {
			t.Errorf("backend calls = %v, want none", calls)
		}
	})

	t.Run("with confirmation the item is deleted", func(t *testing.T) {
		rec := postForm(t, h, "/admin/projects/p1/delete", url.Values{"confirm": {"1"}})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		calls := fb.seen()
		if len(calls) != 1 || calls[0] != (backendCall{"DELETE", "/projects/delete/p1"}) {
			t.Errorf("backend calls = %v", calls)
		}
	})
}

func TestPanelToggle(t *testing.T) {
	fb := newFakeBackend(t, nil)
	sessions := testSessions(t)
	renderer := testRenderer(t, sessions)
	panels := NewPanels(fb.directory(t), renderer, sessions)

	r := chi.NewRouter()
	r.Route("/admin/messages", panels.Messages.Routes)
	h := withSession(sessions, r)

	rec := postForm(t, h, "/admin/messages/m1/toggle", url.Values{"value": {"1"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	calls := fb.seen()
	if len(calls) != 1 || calls[0] != (backendCall{"PATCH", "/contact/read-status/m1"}) {
		t.Errorf("backend calls = %v", calls)
	}
}

func TestPanelReadOnlyRoutes(t *testing.T) {
	fb := newFakeBackend(t, nil)
	sessions := testSessions(t)
	renderer := testRenderer(t, sessions)
	panels := NewPanels(fb.directory(t), renderer, sessions)

	r := chi.NewRouter()
	r.Route("/admin/volunteers", panels.Volunteers.Routes)
	h := withSession(sessions, r)

	// The volunteers panel registers no create route.
	rec := postForm(t, h, "/admin/volunteers", url.Values{"name": {"x"}})
	if rec.Code != http.StatusMethodNotAllowed && rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404/405 for unregistered create", rec.Code)
	}
	if calls := fb.seen(); len(calls) != 0 {
		t.Errorf("backend calls = %v, want none", calls)
	}
}
