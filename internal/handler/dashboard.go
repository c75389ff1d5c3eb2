// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
	"github.com/amanifoundation/amani-go/internal/version"
)

// DashboardHandler renders the admin landing page.
type DashboardHandler struct {
	directory   *api.Directory
	renderer    *render.Renderer
	sessions    *session.Store
	versionInfo version.Info
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(d *api.Directory, renderer *render.Renderer, sessions *session.Store, v version.Info) *DashboardHandler {
	return &DashboardHandler{
		directory:   d,
		renderer:    renderer,
		sessions:    sessions,
		versionInfo: v,
	}
}

// StatCard is one count tile on the dashboard.
type StatCard struct {
	Label string
	Count int
	URL   string
}

// DashboardData is the view data for the dashboard page.
type DashboardData struct {
	Cards   []StatCard
	Version string
}

// Dashboard renders the stats overview. The eight collection counts are
// fetched concurrently; an endpoint that fails shows zero while the rest
// render normally.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(r.Context())
	stats := h.directory.DashboardStats(r.Context(), token)

	data := DashboardData{
		Cards: []StatCard{
			{Label: "Projects", Count: stats.Projects, URL: "/admin/projects"},
			{Label: "Programs", Count: stats.Programs, URL: "/admin/programs"},
			{Label: "Media", Count: stats.Media, URL: "/admin/media"},
			{Label: "Opportunities", Count: stats.Opportunities, URL: "/admin/opportunities"},
			{Label: "Messages", Count: stats.Contacts, URL: "/admin/messages"},
			{Label: "Volunteers", Count: stats.Volunteers, URL: "/admin/volunteers"},
			{Label: "Sponsorships", Count: stats.Sponsorships, URL: "/admin/sponsorships"},
			{Label: "Partnerships", Count: stats.Partnerships, URL: "/admin/partnerships"},
		},
		Version: h.versionInfo.String(),
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title:    "Dashboard",
		Data:     data,
		Identity: identityOf(r),
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}
