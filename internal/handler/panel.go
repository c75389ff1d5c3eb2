// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
)

// Field describes one input on a panel's create/edit form.
type Field struct {
	Name     string
	Label    string
	Type     string // "text", "textarea", "email", "url", "date", "select"
	Required bool
	Options  []string // for "select"
}

// FlagAction describes a panel's single-field toggle, like marking a
// message read or featuring an event.
type FlagAction struct {
	Field    string // JSON field name sent to the backend
	OnLabel  string // label when the flag is set
	OffLabel string // label when it is not
}

// PanelConfig wires one backend collection into the generic admin panel.
// The func fields adapt the typed item to what the templates need, keeping
// the templates themselves type-agnostic.
type PanelConfig[T any] struct {
	Resource *api.Collection[T]

	Singular string // "project"
	Title    string // "Projects"
	BasePath string // "/admin/projects"

	Columns []string
	Fields  []Field

	ID         func(T) string
	Cells      func(T) []string
	FormValues func(T) url.Values // prefills the edit form
	FlagValue  func(T) bool       // nil when the panel has no toggle

	Flag *FlagAction

	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

// Panel is a generic admin CRUD handler for one backend collection. Every
// mutation redirects back to the list page, which re-fetches the whole
// collection; nothing is patched locally.
type Panel[T any] struct {
	cfg      PanelConfig[T]
	renderer *render.Renderer
	sessions *session.Store
}

// NewPanel creates a Panel for the given configuration.
func NewPanel[T any](cfg PanelConfig[T], renderer *render.Renderer, sessions *session.Store) *Panel[T] {
	return &Panel[T]{cfg: cfg, renderer: renderer, sessions: sessions}
}

// Routes registers the panel's routes on r.
func (p *Panel[T]) Routes(r chi.Router) {
	r.Get(RouteRoot, p.List)
	if p.cfg.CanCreate {
		r.Get(RouteSuffixNew, p.NewForm)
		r.Post(RouteRoot, p.Create)
	}
	if p.cfg.CanUpdate {
		r.Get(RouteSuffixEdit, p.EditForm)
		r.Post(RouteParamID, p.Update)
	}
	if p.cfg.CanDelete {
		r.Post(RouteSuffixDelete, p.Delete)
	}
	if p.cfg.Flag != nil {
		r.Post(RouteSuffixToggle, p.Toggle)
	}
}

// Row is one precomputed table row.
type Row struct {
	ID      string
	Cells   []string
	Flag    bool
	HasFlag bool
}

// ListData is the view data for a panel's list page.
type ListData struct {
	Singular  string
	Title     string
	BasePath  string
	Columns   []string
	Rows      []Row
	Flag      *FlagAction
	CanCreate bool
	CanUpdate bool
	CanDelete bool
	LoadError string
}

// FormData is the view data for a panel's create/edit form.
type FormData struct {
	Singular string
	Title    string
	BasePath string
	Action   string
	Fields   []Field
	Values   url.Values
	IsEdit   bool
}

// List renders the full collection.
func (p *Panel[T]) List(w http.ResponseWriter, r *http.Request) {
	token := p.sessions.Token(r.Context())

	data := ListData{
		Singular:  p.cfg.Singular,
		Title:     p.cfg.Title,
		BasePath:  p.cfg.BasePath,
		Columns:   p.cfg.Columns,
		Flag:      p.cfg.Flag,
		CanCreate: p.cfg.CanCreate,
		CanUpdate: p.cfg.CanUpdate,
		CanDelete: p.cfg.CanDelete,
	}

	items, err := p.cfg.Resource.List(r.Context(), token)
	if err != nil {
		// The list page still renders; it just shows the failure instead
		// of rows.
		slog.Error("listing collection", "resource", p.cfg.Resource.Name(), "error", err)
		data.LoadError = apiErrorMessage(err, "Could not load "+p.cfg.Title+".")
	}

	for _, item := range items {
		row := Row{ID: p.cfg.ID(item), Cells: p.cfg.Cells(item)}
		if p.cfg.FlagValue != nil {
			row.Flag = p.cfg.FlagValue(item)
			row.HasFlag = true
		}
		data.Rows = append(data.Rows, row)
	}

	p.render(w, r, "admin/panel_list", p.cfg.Title, data)
}

// NewForm renders an empty create form.
func (p *Panel[T]) NewForm(w http.ResponseWriter, r *http.Request) {
	p.renderForm(w, r, FormData{
		Singular: p.cfg.Singular,
		Title:    "New " + p.cfg.Singular,
		BasePath: p.cfg.BasePath,
		Action:   p.cfg.BasePath,
		Fields:   p.cfg.Fields,
		Values:   url.Values{},
	}, "")
}

// Create handles the create form submission. On failure the form re-renders
// with the submitted draft intact and the backend's message shown verbatim.
func (p *Panel[T]) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, p.sessions, p.cfg.BasePath+RouteSuffixNew) {
		return
	}

	draft := FormData{
		Singular: p.cfg.Singular,
		Title:    "New " + p.cfg.Singular,
		BasePath: p.cfg.BasePath,
		Action:   p.cfg.BasePath,
		Fields:   p.cfg.Fields,
		Values:   r.PostForm,
	}

	if missing := requiredFields(r, p.requiredFieldNames()...); len(missing) > 0 {
		p.renderForm(w, r, draft, missingFieldsMessage(missing))
		return
	}

	token := p.sessions.Token(r.Context())
	if err := p.cfg.Resource.Create(r.Context(), token, p.formPayload(r)); err != nil {
		slog.Warn("create failed", "resource", p.cfg.Resource.Name(), "error", err)
		p.renderForm(w, r, draft, apiErrorMessage(err, "Could not create "+p.cfg.Singular+"."))
		return
	}

	flashSuccess(w, r, p.sessions, p.cfg.BasePath, capitalize(p.cfg.Singular)+" created.")
}

// EditForm renders the edit form prefilled from the backend's copy of the
// item.
func (p *Panel[T]) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := p.sessions.Token(r.Context())

	item, err := p.cfg.Resource.Get(r.Context(), token, id)
	if err != nil {
		slog.Warn("loading item for edit", "resource", p.cfg.Resource.Name(), "id", id, "error", err)
		flashError(w, r, p.sessions, p.cfg.BasePath, apiErrorMessage(err, "Could not load "+p.cfg.Singular+"."))
		return
	}

	p.renderForm(w, r, FormData{
		Singular: p.cfg.Singular,
		Title:    "Edit " + p.cfg.Singular,
		BasePath: p.cfg.BasePath,
		Action:   p.cfg.BasePath + "/" + url.PathEscape(id),
		Fields:   p.cfg.Fields,
		Values:   p.cfg.FormValues(item),
		IsEdit:   true,
	}, "")
}

// Update handles the edit form submission.
func (p *Panel[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, p.sessions, p.cfg.BasePath) {
		return
	}

	draft := FormData{
		Singular: p.cfg.Singular,
		Title:    "Edit " + p.cfg.Singular,
		BasePath: p.cfg.BasePath,
		Action:   p.cfg.BasePath + "/" + url.PathEscape(id),
		Fields:   p.cfg.Fields,
		Values:   r.PostForm,
		IsEdit:   true,
	}

	if missing := requiredFields(r, p.requiredFieldNames()...); len(missing) > 0 {
		p.renderForm(w, r, draft, missingFieldsMessage(missing))
		return
	}

	token := p.sessions.Token(r.Context())
	if err := p.cfg.Resource.Update(r.Context(), token, id, p.formPayload(r)); err != nil {
		slog.Warn("update failed", "resource", p.cfg.Resource.Name(), "id", id, "error", err)
		p.renderForm(w, r, draft, apiErrorMessage(err, "Could not update "+p.cfg.Singular+"."))
		return
	}

	flashSuccess(w, r, p.sessions, p.cfg.BasePath, capitalize(p.cfg.Singular)+" updated.")
}

// Delete removes an item. The form must carry confirm=1, set by the
// confirmation dialog; without it no backend call is made at all.
func (p *Panel[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, p.sessions, p.cfg.BasePath) {
		return
	}

	if r.FormValue("confirm") != "1" {
		http.Redirect(w, r, p.cfg.BasePath, http.StatusSeeOther)
		return
	}

	token := p.sessions.Token(r.Context())
	if err := p.cfg.Resource.Delete(r.Context(), token, id); err != nil {
		slog.Warn("delete failed", "resource", p.cfg.Resource.Name(), "id", id, "error", err)
		flashError(w, r, p.sessions, p.cfg.BasePath, apiErrorMessage(err, "Could not delete "+p.cfg.Singular+"."))
		return
	}

	flashSuccess(w, r, p.sessions, p.cfg.BasePath, capitalize(p.cfg.Singular)+" deleted.")
}

// Toggle flips the panel's flag field on one item.
func (p *Panel[T]) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseFormOrRedirect(w, r, p.sessions, p.cfg.BasePath) {
		return
	}

	value := r.FormValue("value") == "1"
	token := p.sessions.Token(r.Context())
	if err := p.cfg.Resource.SetFlag(r.Context(), token, id, p.cfg.Flag.Field, value); err != nil {
		slog.Warn("flag toggle failed", "resource", p.cfg.Resource.Name(), "id", id, "error", err)
		flashError(w, r, p.sessions, p.cfg.BasePath, apiErrorMessage(err, "Could not update "+p.cfg.Singular+"."))
		return
	}

	http.Redirect(w, r, p.cfg.BasePath, http.StatusSeeOther)
}

func (p *Panel[T]) requiredFieldNames() []string {
	var names []string
	for _, f := range p.cfg.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// formPayload collects the configured fields from the submitted form into
// the JSON body sent to the backend.
func (p *Panel[T]) formPayload(r *http.Request) map[string]any {
	payload := make(map[string]any, len(p.cfg.Fields))
	for _, f := range p.cfg.Fields {
		payload[f.Name] = r.FormValue(f.Name)
	}
	return payload
}

func (p *Panel[T]) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := p.renderer.Render(w, r, name, render.TemplateData{
		Title:    title,
		Data:     data,
		Identity: identityOf(r),
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: p.cfg.Title, URL: p.cfg.BasePath},
		},
	}); err != nil {
		logAndInternalError(w, "rendering panel page", "template", name, "error", err)
	}
}

// renderForm renders the create/edit form, optionally with an error banner.
// Form errors render inline rather than via flash so the draft stays bound
// to the message describing why it was rejected.
func (p *Panel[T]) renderForm(w http.ResponseWriter, r *http.Request, data FormData, errMsg string) {
	td := render.TemplateData{
		Title:    data.Title,
		Data:     data,
		Identity: identityOf(r),
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: p.cfg.Title, URL: p.cfg.BasePath},
			{Label: data.Title, URL: data.Action},
		},
	}
	if errMsg != "" {
		td.Flash = errMsg
		td.FlashType = "error"
	}
	if err := p.renderer.Render(w, r, "admin/panel_form", td); err != nil {
		logAndInternalError(w, "rendering panel form", "error", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
