// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that feeds the admin
// activity page. It forwards every record to the wrapped handler and keeps
// WARN level and above in a bounded in-memory ring for display.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of entries the ring retains.
const DefaultCapacity = 200

// Entry is one retained log record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   string
}

// RingHandler is a slog.Handler that wraps another handler and retains
// recent WARN and ERROR records in a fixed-size ring. Handlers derived via
// WithAttrs and WithGroup share the same ring.
type RingHandler struct {
	inner slog.Handler
	level slog.Level
	ring  *ring
}

type ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewRingHandler creates a RingHandler that wraps inner and retains records
// at WARN level and above.
func NewRingHandler(inner slog.Handler) *RingHandler {
	return NewRingHandlerWithLevel(inner, slog.LevelWarn, DefaultCapacity)
}

// NewRingHandlerWithLevel creates a RingHandler with a custom retention
// level and capacity.
func NewRingHandlerWithLevel(inner slog.Handler, level slog.Level, capacity int) *RingHandler {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RingHandler{
		inner: inner,
		level: level,
		ring:  &ring{entries: make([]Entry, capacity)},
	}
}

// Enabled implements slog.Handler.
func (h *RingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RingHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.ring.add(Entry{
			Time:    r.Time,
			Level:   r.Level,
			Message: r.Message,
			Attrs:   formatAttrs(r),
		})
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RingHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
		ring:  h.ring,
	}
}

// WithGroup implements slog.Handler.
func (h *RingHandler) WithGroup(name string) slog.Handler {
	return &RingHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
		ring:  h.ring,
	}
}

// Recent returns up to limit retained entries, newest first.
func (h *RingHandler) Recent(limit int) []Entry {
	return h.ring.recent(limit)
}

func (rg *ring) add(e Entry) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.entries[rg.next] = e
	rg.next++
	if rg.next == len(rg.entries) {
		rg.next = 0
		rg.full = true
	}
}

func (rg *ring) recent(limit int) []Entry {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	n := rg.next
	if rg.full {
		n = len(rg.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (rg.next - 1 - i + len(rg.entries)) % len(rg.entries)
		out = append(out, rg.entries[idx])
	}
	return out
}

// formatAttrs collects the record's attributes into a "k=v k=v" string.
func formatAttrs(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return ""
	}
	var sb strings.Builder
	r.Attrs(func(a slog.Attr) bool {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})
	return sb.String()
}
