// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the public site and the admin
// console.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
	"github.com/amanifoundation/amani-go/internal/util"
)

// FrontendHandler serves the public marketing pages. All content reads go
// to the backend unauthenticated; form submissions create entries in the
// public collections.
type FrontendHandler struct {
	directory *api.Directory
	renderer  *render.Renderer
	sessions  *session.Store
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(d *api.Directory, renderer *render.Renderer, sessions *session.Store) *FrontendHandler {
	return &FrontendHandler{directory: d, renderer: renderer, sessions: sessions}
}

// Routes registers the public routes.
func (h *FrontendHandler) Routes(r chi.Router) {
	r.Get(RouteRoot, h.Home)
	r.Get("/projects", h.Projects)
	r.Get("/projects"+RouteParamRef, h.Project)
	r.Get("/programs", h.Programs)
	r.Get("/programs"+RouteParamRef, h.Program)
	r.Get("/gallery", h.Gallery)
	r.Get("/events", h.Events)
	r.Get("/opportunities", h.Opportunities)
	r.Get("/contact", h.ContactForm)
	r.Post("/contact", h.ContactSubmit)
	r.Get("/get-involved", h.GetInvolved)
	r.Post("/get-involved/volunteer", h.VolunteerSubmit)
	r.Post("/get-involved/sponsor", h.SponsorSubmit)
	r.Post("/get-involved/partner", h.PartnerSubmit)
}

// HomeData is the view data for the home page.
type HomeData struct {
	Projects []api.Project
	Events   []api.FeaturedEvent
}

// Home renders the landing page with recent projects and featured events.
// Either list failing leaves that section empty without taking the page
// down.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	var data HomeData

	projects, err := h.directory.Projects.List(r.Context(), "")
	if err != nil {
		slog.Warn("loading home projects", "error", err)
	} else {
		if len(projects) > 3 {
			projects = projects[:3]
		}
		data.Projects = projects
	}

	events, err := h.directory.Events.List(r.Context(), "")
	if err != nil {
		slog.Warn("loading home events", "error", err)
	} else {
		featured := events[:0]
		for _, e := range events {
			if e.Featured {
				featured = append(featured, e)
			}
		}
		data.Events = featured
	}

	h.render(w, r, "site/home", "Home", data)
}

// Projects renders the full project list.
func (h *FrontendHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.directory.Projects.List(r.Context(), "")
	if err != nil {
		slog.Error("loading projects", "error", err)
	}
	h.render(w, r, "site/projects", "Our Projects", projects)
}

// Project renders one project. The URL carries an id-slug reference; only
// the id part addresses the backend, so a stale slug still resolves.
func (h *FrontendHandler) Project(w http.ResponseWriter, r *http.Request) {
	id := util.RefID(chi.URLParam(r, "ref"))

	project, err := h.directory.Projects.Get(r.Context(), "", id)
	if err != nil {
		slog.Warn("loading project", "id", id, "error", err)
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "site/project", project.Title, project)
}

// Programs renders the program list.
func (h *FrontendHandler) Programs(w http.ResponseWriter, r *http.Request) {
	programs, err := h.directory.Programs.List(r.Context(), "")
	if err != nil {
		slog.Error("loading programs", "error", err)
	}
	h.render(w, r, "site/programs", "Our Programs", programs)
}

// Program renders one program.
func (h *FrontendHandler) Program(w http.ResponseWriter, r *http.Request) {
	id := util.RefID(chi.URLParam(r, "ref"))

	program, err := h.directory.Programs.Get(r.Context(), "", id)
	if err != nil {
		slog.Warn("loading program", "id", id, "error", err)
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "site/program", program.Name, program)
}

// Gallery renders the media gallery.
func (h *FrontendHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Media.List(r.Context(), "")
	if err != nil {
		slog.Error("loading gallery", "error", err)
	}
	h.render(w, r, "site/gallery", "Gallery", items)
}

// Events renders upcoming events.
func (h *FrontendHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.directory.Events.List(r.Context(), "")
	if err != nil {
		slog.Error("loading events", "error", err)
	}
	h.render(w, r, "site/events", "Events", events)
}

// Opportunities renders active openings. Inactive ones are managed in the
// console but never shown publicly.
func (h *FrontendHandler) Opportunities(w http.ResponseWriter, r *http.Request) {
	all, err := h.directory.Opportunities.List(r.Context(), "")
	if err != nil {
		slog.Error("loading opportunities", "error", err)
	}

	active := all[:0]
	for _, o := range all {
		if o.IsActive {
			active = append(active, o)
		}
	}
	h.render(w, r, "site/opportunities", "Opportunities", active)
}

// ContactForm renders the contact page.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "site/contact", "Contact Us", nil)
}

// ContactSubmit handles the contact form.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessions, redirectContact) {
		return
	}

	if missing := requiredFields(r, "name", "email", "message"); len(missing) > 0 {
		flashError(w, r, h.sessions, redirectContact, missingFieldsMessage(missing))
		return
	}

	err := h.directory.Contacts.Create(r.Context(), "", map[string]any{
		"name":    r.FormValue("name"),
		"email":   r.FormValue("email"),
		"subject": r.FormValue("subject"),
		"message": r.FormValue("message"),
	})
	if err != nil {
		slog.Warn("contact submission failed", "error", err)
		flashError(w, r, h.sessions, redirectContact, apiErrorMessage(err, "Could not send your message. Please try again."))
		return
	}

	flashSuccess(w, r, h.sessions, redirectContact, "Thank you for reaching out. We will get back to you soon.")
}

// GetInvolved renders the get-involved page with its three forms.
func (h *FrontendHandler) GetInvolved(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "site/get_involved", "Get Involved", nil)
}

// VolunteerSubmit handles the volunteer sign-up form.
func (h *FrontendHandler) VolunteerSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessions, redirectGetInvolved) {
		return
	}

	if missing := requiredFields(r, "name", "email"); len(missing) > 0 {
		flashError(w, r, h.sessions, redirectGetInvolved, missingFieldsMessage(missing))
		return
	}

	err := h.directory.Volunteers.Create(r.Context(), "", map[string]any{
		"name":     r.FormValue("name"),
		"email":    r.FormValue("email"),
		"phone":    r.FormValue("phone"),
		"interest": r.FormValue("interest"),
	})
	if err != nil {
		slog.Warn("volunteer submission failed", "error", err)
		flashError(w, r, h.sessions, redirectGetInvolved, apiErrorMessage(err, "Could not submit your sign-up. Please try again."))
		return
	}

	flashSuccess(w, r, h.sessions, redirectGetInvolved, "Thank you for volunteering! We will be in touch.")
}

// SponsorSubmit handles the sponsorship form.
func (h *FrontendHandler) SponsorSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessions, redirectGetInvolved) {
		return
	}

	if missing := requiredFields(r, "name", "email"); len(missing) > 0 {
		flashError(w, r, h.sessions, redirectGetInvolved, missingFieldsMessage(missing))
		return
	}

	err := h.directory.Sponsorships.Create(r.Context(), "", map[string]any{
		"name":         r.FormValue("name"),
		"email":        r.FormValue("email"),
		"organization": r.FormValue("organization"),
		"message":      r.FormValue("message"),
	})
	if err != nil {
		slog.Warn("sponsorship submission failed", "error", err)
		flashError(w, r, h.sessions, redirectGetInvolved, apiErrorMessage(err, "Could not submit your offer. Please try again."))
		return
	}

	flashSuccess(w, r, h.sessions, redirectGetInvolved, "Thank you for your sponsorship offer!")
}

// PartnerSubmit handles the partnership form.
func (h *FrontendHandler) PartnerSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessions, redirectGetInvolved) {
		return
	}

	if missing := requiredFields(r, "organization", "email"); len(missing) > 0 {
		flashError(w, r, h.sessions, redirectGetInvolved, missingFieldsMessage(missing))
		return
	}

	err := h.directory.Partnerships.Create(r.Context(), "", map[string]any{
		"organization":  r.FormValue("organization"),
		"contactPerson": r.FormValue("contactPerson"),
		"email":         r.FormValue("email"),
		"message":       r.FormValue("message"),
	})
	if err != nil {
		slog.Warn("partnership submission failed", "error", err)
		flashError(w, r, h.sessions, redirectGetInvolved, apiErrorMessage(err, "Could not submit your proposal. Please try again."))
		return
	}

	flashSuccess(w, r, h.sessions, redirectGetInvolved, "Thank you! We will review your proposal.")
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := h.renderer.Render(w, r, name, render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering page", "template", name, "error", err)
	}
}
