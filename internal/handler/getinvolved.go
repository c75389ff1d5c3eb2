// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
)

// GetInvolvedHandler renders the combined submissions review page.
type GetInvolvedHandler struct {
	directory *api.Directory
	renderer  *render.Renderer
	sessions  *session.Store
}

// NewGetInvolvedHandler creates a new GetInvolvedHandler.
func NewGetInvolvedHandler(d *api.Directory, renderer *render.Renderer, sessions *session.Store) *GetInvolvedHandler {
	return &GetInvolvedHandler{directory: d, renderer: renderer, sessions: sessions}
}

// GetInvolved renders the volunteers, sponsorships and partnerships lists
// side by side. The three fetches run concurrently; a failed one shows an
// empty list without hiding the others.
func (h *GetInvolvedHandler) GetInvolved(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(r.Context())
	summary := h.directory.GetInvolved(r.Context(), token)

	if err := h.renderer.Render(w, r, "admin/get_involved", render.TemplateData{
		Title:    "Get Involved Submissions",
		Data:     summary,
		Identity: identityOf(r),
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Get Involved", URL: "/admin/get-involved"},
		},
	}); err != nil {
		logAndInternalError(w, "rendering get-involved page", "error", err)
	}
}
