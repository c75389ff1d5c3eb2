// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
)

// testSessions creates a session store backed by an in-memory database.
func testSessions(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
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
	return session.NewStore(session.New(db, true))
}

// testRenderer builds a renderer over minimal templates that echo the data
// the tests assert on.
func testRenderer(t *testing.T, sessions *session.Store) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}{{template "main" .}}{{end}}`),
		},
		"layouts/site.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}{{template "main" .}}{{end}}`),
		},
		"admin/panel_list.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}list:{{.Data.Title}}{{range .Data.Rows}}|{{.ID}}{{end}}{{if .Data.LoadError}}!{{.Data.LoadError}}{{end}}{{end}}`),
		},
		"admin/panel_form.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}form:{{.Data.Action}}{{if .Flash}}!{{.Flash}}{{end}}{{range .Data.Fields}}|{{.Name}}={{$.Data.Values.Get .Name}}{{end}}{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{range .Data.Cards}}{{.Label}}={{.Count}};{{end}}{{end}}`),
		},
		"admin/get_involved.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}v={{len .Data.Volunteers}};s={{len .Data.Sponsorships}};p={{len .Data.Partnerships}}{{end}}`),
		},
		"admin/activity.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{range .Data.Entries}}{{.Message}};{{end}}{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}login{{if .Flash}}!{{.Flash}}{{end}}|email={{.Data.Email}}{{end}}`),
		},
		"site/home.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}home:{{len .Data.Projects}}{{end}}`),
		},
		"site/projects.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{range .Data}}{{.Title}};{{end}}{{end}}`),
		},
		"site/project.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{.Data.Title}}{{end}}`),
		},
		"site/programs.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{range .Data}}{{.Name}};{{end}}{{end}}`),
		},
		"site/program.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{.Data.Name}}{{end}}`),
		},
		"site/gallery.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{len .Data}}{{end}}`),
		},
		"site/events.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{len .Data}}{{end}}`),
		},
		"site/opportunities.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}{{range .Data}}{{.Title}};{{end}}{{end}}`),
		},
		"site/contact.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}contact{{end}}`),
		},
		"site/get_involved.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}get involved{{end}}`),
		},
	}

	r, err := render.New(render.Config{
		TemplatesFS: fsys,
		Sessions:    sessions,
		SiteName:    "Amani Foundation",
		IsDev:       true,
	})
	if err != nil {
		t.Fatalf("building test renderer: %v", err)
	}
	return r
}

// backendCall is one request the fake backend observed.
type backendCall struct {
	Method string
	Path   string
}

// fakeBackend is a recording stand-in for the content API.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	handler http.HandlerFunc
	srv     *httptest.Server
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{handler: handler}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{Method: r.Method, Path: r.URL.Path})
		fb.mu.Unlock()
		if fb.handler != nil {
			fb.handler(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) seen() []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]backendCall(nil), fb.calls...)
}

func (fb *fakeBackend) directory(t *testing.T) *api.Directory {
	t.Helper()
	c, err := api.New(fb.srv.URL)
	if err != nil {
		t.Fatalf("building api client: %v", err)
	}
	return api.NewDirectory(c)
}

// withSession wraps a handler in the scs LoadAndSave middleware so session
// operations work inside tests.
func withSession(sessions *session.Store, h http.Handler) http.Handler {
	return sessions.Manager().LoadAndSave(h)
}
