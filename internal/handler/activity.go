// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amanifoundation/amani-go/internal/logging"
	"github.com/amanifoundation/amani-go/internal/render"
)

// ActivityHandler shows the recent warnings and errors retained in memory.
type ActivityHandler struct {
	ring     *logging.RingHandler
	renderer *render.Renderer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(ring *logging.RingHandler, renderer *render.Renderer) *ActivityHandler {
	return &ActivityHandler{ring: ring, renderer: renderer}
}

// ActivityData is the view data for the activity page.
type ActivityData struct {
	Entries []logging.Entry
}

// Activity renders the recent log entries, newest first.
func (h *ActivityHandler) Activity(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/activity", render.TemplateData{
		Title:    "Activity",
		Data:     ActivityData{Entries: h.ring.Recent(100)},
		Identity: identityOf(r),
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Activity", URL: "/admin/activity"},
		},
	}); err != nil {
		logAndInternalError(w, "rendering activity page", "error", err)
	}
}
