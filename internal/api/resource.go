// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// Endpoints describes the conventional route set of one backend resource:
// GET /<name>/get, GET /<name>/get/:id, POST /<name>/add,
// PUT /<name>/update/:id, PATCH /<name>/<flag>/:id, DELETE /<name>/delete/:id.
type Endpoints struct {
	// Name is the resource path segment, e.g. "projects".
	Name string
	// Key is the envelope key the payload sits under. When empty, "data"
	// and Name are tried.
	Key string
	// FlagPath is the route segment of the single-field PATCH endpoint,
	// e.g. "read-status". Empty means the resource has no lifecycle flag.
	FlagPath string
}

// Collection is a typed client for one backend resource collection. All
// methods issue exactly one HTTP request; callers re-list after mutations
// rather than patching local state.
type Collection[T any] struct {
	client *Client
	ep     Endpoints
}

// NewCollection creates a Collection for the given endpoints.
func NewCollection[T any](c *Client, ep Endpoints) *Collection[T] {
	return &Collection[T]{client: c, ep: ep}
}

// Name returns the resource path segment.
func (col *Collection[T]) Name() string {
	return col.ep.Name
}

func (col *Collection[T]) path(parts ...string) string {
	p := "/" + col.ep.Name
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func (col *Collection[T]) payloadKeys() []string {
	if col.ep.Key != "" {
		return []string{col.ep.Key, "data", col.ep.Name}
	}
	return []string{"data", col.ep.Name}
}

// List fetches the entire collection. Collections are small enough that the
// backend exposes no pagination; the result replaces any local copy wholesale.
func (col *Collection[T]) List(ctx context.Context, token string) ([]T, error) {
	data, err := col.client.Do(ctx, http.MethodGet, col.path("get"), token, nil)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := payload(data, &items, col.payloadKeys()...); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item by ID.
func (col *Collection[T]) Get(ctx context.Context, token, id string) (T, error) {
	var item T
	data, err := col.client.Do(ctx, http.MethodGet, col.path("get", id), token, nil)
	if err != nil {
		return item, err
	}
	if err := payload(data, &item, col.payloadKeys()...); err != nil {
		return item, err
	}
	return item, nil
}

// Create submits a new item. The fields map is the form draft; the backend
// assigns the ID and lifecycle defaults.
func (col *Collection[T]) Create(ctx context.Context, token string, fields map[string]any) error {
	_, err := col.client.Do(ctx, http.MethodPost, col.path("add"), token, fields)
	return err
}

// Update replaces an item's editable fields.
func (col *Collection[T]) Update(ctx context.Context, token, id string, fields map[string]any) error {
	_, err := col.client.Do(ctx, http.MethodPut, col.path("update", id), token, fields)
	return err
}

// Delete removes an item permanently. There is no soft delete or undo.
func (col *Collection[T]) Delete(ctx context.Context, token, id string) error {
	_, err := col.client.Do(ctx, http.MethodDelete, col.path("delete", id), token, nil)
	return err
}

// SetFlag patches a single lifecycle field (read/unread, active/inactive,
// featured/unfeatured).
func (col *Collection[T]) SetFlag(ctx context.Context, token, id, field string, value bool) error {
	flagPath := col.ep.FlagPath
	if flagPath == "" {
		flagPath = "status"
	}
	_, err := col.client.Do(ctx, http.MethodPatch, col.path(flagPath, id), token, map[string]any{field: value})
	return err
}

// Count fetches the collection and returns its size. The backend exposes no
// count endpoint, so dashboard figures are derived from full lists.
func (col *Collection[T]) Count(ctx context.Context, token string) (int, error) {
	items, err := col.List(ctx, token)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
