// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
)

// Panels bundles the per-resource admin panels so main.go can mount them
// in one call.
type Panels struct {
	Projects      *Panel[api.Project]
	Programs      *Panel[api.Program]
	Media         *Panel[api.MediaItem]
	Opportunities *Panel[api.Opportunity]
	Events        *Panel[api.FeaturedEvent]
	Users         *Panel[api.User]
	Messages      *Panel[api.Contact]
	Volunteers    *Panel[api.Volunteer]
	Sponsorships  *Panel[api.Sponsorship]
	Partnerships  *Panel[api.Partnership]
}

// NewPanels builds every admin panel against the API directory.
func NewPanels(d *api.Directory, renderer *render.Renderer, sessions *session.Store) *Panels {
	return &Panels{
		Projects: NewPanel(PanelConfig[api.Project]{
			Resource: d.Projects,
			Singular: "project",
			Title:    "Projects",
			BasePath: "/admin/projects",
			Columns:  []string{"Title", "Category", "Status", "Created"},
			Fields: []Field{
				{Name: "title", Label: "Title", Type: "text", Required: true},
				{Name: "category", Label: "Category", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Required: true},
				{Name: "imageUrl", Label: "Image URL", Type: "url"},
				{Name: "status", Label: "Status", Type: "select", Options: []string{"planned", "ongoing", "completed"}},
			},
			ID: func(p api.Project) string { return p.ID },
			Cells: func(p api.Project) []string {
				return []string{p.Title, p.Category, p.Status, p.CreatedAt.Format("Jan 2, 2006")}
			},
			FormValues: func(p api.Project) url.Values {
				return url.Values{
					"title":       {p.Title},
					"category":    {p.Category},
					"description": {p.Description},
					"imageUrl":    {p.ImageURL},
					"status":      {p.Status},
				}
			},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		Programs: NewPanel(PanelConfig[api.Program]{
			Resource: d.Programs,
			Singular: "program",
			Title:    "Programs",
			BasePath: "/admin/programs",
			Columns:  []string{"Name", "Created"},
			Fields: []Field{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Required: true},
				{Name: "imageUrl", Label: "Image URL", Type: "url"},
			},
			ID: func(p api.Program) string { return p.ID },
			Cells: func(p api.Program) []string {
				return []string{p.Name, p.CreatedAt.Format("Jan 2, 2006")}
			},
			FormValues: func(p api.Program) url.Values {
				return url.Values{
					"name":        {p.Name},
					"description": {p.Description},
					"imageUrl":    {p.ImageURL},
				}
			},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		Media: NewPanel(PanelConfig[api.MediaItem]{
			Resource: d.Media,
			Singular: "media item",
			Title:    "Media Gallery",
			BasePath: "/admin/media",
			Columns:  []string{"Title", "Type", "Created"},
			Fields: []Field{
				{Name: "title", Label: "Title", Type: "text", Required: true},
				{Name: "type", Label: "Type", Type: "select", Required: true, Options: []string{"image", "video"}},
				{Name: "url", Label: "URL", Type: "url", Required: true},
				{Name: "description", Label: "Description", Type: "textarea"},
			},
			ID: func(m api.MediaItem) string { return m.ID },
			Cells: func(m api.MediaItem) []string {
				return []string{m.Title, m.Type, m.CreatedAt.Format("Jan 2, 2006")}
			},
			FormValues: func(m api.MediaItem) url.Values {
				return url.Values{
					"title":       {m.Title},
					"type":        {m.Type},
					"url":         {m.URL},
					"description": {m.Description},
				}
			},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		Opportunities: NewPanel(PanelConfig[api.Opportunity]{
			Resource: d.Opportunities,
			Singular: "opportunity",
			Title:    "Opportunities",
			BasePath: "/admin/opportunities",
			Columns:  []string{"Title", "Location", "Created"},
			Fields: []Field{
				{Name: "title", Label: "Title", Type: "text", Required: true},
				{Name: "location", Label: "Location", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Required: true},
			},
			ID: func(o api.Opportunity) string { return o.ID },
			Cells: func(o api.Opportunity) []string {
				return []string{o.Title, o.Location, o.CreatedAt.Format("Jan 2, 2006")}
			},
			FormValues: func(o api.Opportunity) url.Values {
				return url.Values{
					"title":       {o.Title},
					"location":    {o.Location},
					"description": {o.Description},
				}
			},
			FlagValue: func(o api.Opportunity) bool { return o.IsActive },
			Flag:      &FlagAction{Field: "isActive", OnLabel: "Active", OffLabel: "Inactive"},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		Events: NewPanel(PanelConfig[api.FeaturedEvent]{
			Resource: d.Events,
			Singular: "event",
			Title:    "Featured Events",
			BasePath: "/admin/events",
			Columns:  []string{"Title", "Date", "Location"},
			Fields: []Field{
				{Name: "title", Label: "Title", Type: "text", Required: true},
				{Name: "date", Label: "Date", Type: "date", Required: true},
				{Name: "location", Label: "Location", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea"},
			},
			ID: func(e api.FeaturedEvent) string { return e.ID },
			Cells: func(e api.FeaturedEvent) []string {
				return []string{e.Title, e.Date, e.Location}
			},
			FormValues: func(e api.FeaturedEvent) url.Values {
				return url.Values{
					"title":       {e.Title},
					"date":        {e.Date},
					"location":    {e.Location},
					"description": {e.Description},
				}
			},
			FlagValue: func(e api.FeaturedEvent) bool { return e.Featured },
			Flag:      &FlagAction{Field: "featured", OnLabel: "Featured", OffLabel: "Hidden"},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		Users: NewPanel(PanelConfig[api.User]{
			Resource: d.Users,
			Singular: "user",
			Title:    "Users",
			BasePath: "/admin/users",
			Columns:  []string{"Name", "Email", "Role", "Created"},
			Fields: []Field{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "email", Label: "Email", Type: "email", Required: true},
				{Name: "password", Label: "Password", Type: "text", Required: true},
				{Name: "role", Label: "Role", Type: "select", Required: true, Options: []string{"admin", "user"}},
			},
			ID: func(u api.User) string { return u.ID },
			Cells: func(u api.User) []string {
				return []string{u.Name, u.Email, u.Role, u.CreatedAt.Format("Jan 2, 2006")}
			},
			FormValues: func(u api.User) url.Values {
				return url.Values{
					"name":  {u.Name},
					"email": {u.Email},
					"role":  {u.Role},
				}
			},
			CanCreate: true,
			CanUpdate: true,
			CanDelete: true,
		}, renderer, sessions),

		// Submission panels: the public site creates these; the console
		// only reviews and prunes them.
		Messages: NewPanel(PanelConfig[api.Contact]{
			Resource: d.Contacts,
			Singular: "message",
			Title:    "Messages",
			BasePath: "/admin/messages",
			Columns:  []string{"From", "Email", "Subject", "Received"},
			ID:       func(c api.Contact) string { return c.ID },
			Cells: func(c api.Contact) []string {
				return []string{c.Name, c.Email, c.Subject, c.CreatedAt.Format("Jan 2, 2006")}
			},
			FlagValue: func(c api.Contact) bool { return c.Read },
			Flag:      &FlagAction{Field: "read", OnLabel: "Read", OffLabel: "Unread"},
			CanDelete: true,
		}, renderer, sessions),

		Volunteers: NewPanel(PanelConfig[api.Volunteer]{
			Resource: d.Volunteers,
			Singular: "volunteer sign-up",
			Title:    "Volunteers",
			BasePath: "/admin/volunteers",
			Columns:  []string{"Name", "Email", "Phone", "Interest"},
			ID:       func(v api.Volunteer) string { return v.ID },
			Cells: func(v api.Volunteer) []string {
				return []string{v.Name, v.Email, v.Phone, v.Interest}
			},
			CanDelete: true,
		}, renderer, sessions),

		Sponsorships: NewPanel(PanelConfig[api.Sponsorship]{
			Resource: d.Sponsorships,
			Singular: "sponsorship offer",
			Title:    "Sponsorships",
			BasePath: "/admin/sponsorships",
			Columns:  []string{"Name", "Email", "Organization"},
			ID:       func(s api.Sponsorship) string { return s.ID },
			Cells: func(s api.Sponsorship) []string {
				return []string{s.Name, s.Email, s.Organization}
			},
			CanDelete: true,
		}, renderer, sessions),

		Partnerships: NewPanel(PanelConfig[api.Partnership]{
			Resource: d.Partnerships,
			Singular: "partnership proposal",
			Title:    "Partnerships",
			BasePath: "/admin/partnerships",
			Columns:  []string{"Organization", "Contact", "Email"},
			ID:       func(p api.Partnership) string { return p.ID },
			Cells: func(p api.Partnership) []string {
				return []string{p.Organization, p.Contact, p.Email}
			},
			CanDelete: true,
		}, renderer, sessions),
	}
}

// Routes mounts every panel under its base path relative to the admin
// router.
func (p *Panels) Routes(r chi.Router) {
	r.Route("/projects", p.Projects.Routes)
	r.Route("/programs", p.Programs.Routes)
	r.Route("/media", p.Media.Routes)
	r.Route("/opportunities", p.Opportunities.Routes)
	r.Route("/events", p.Events.Routes)
	r.Route("/users", p.Users.Routes)
	r.Route("/messages", p.Messages.Routes)
	r.Route("/volunteers", p.Volunteers.Routes)
	r.Route("/sponsorships", p.Sponsorships.Routes)
	r.Route("/partnerships", p.Partnerships.Routes)
}
