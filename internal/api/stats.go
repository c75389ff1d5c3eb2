// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"sync"
)

// Stats holds the collection counts shown on the admin dashboard.
type Stats struct {
	Projects      int
	Programs      int
	Media         int
	Opportunities int
	Contacts      int
	Volunteers    int
	Sponsorships  int
	Partnerships  int
}

// DashboardStats fetches all eight collection counts concurrently and
// aggregates them once every fetch has resolved. Failures are isolated per
// endpoint: a failed fetch logs a warning and contributes a zero count, it
// never aborts the other seven.
func (d *Directory) DashboardStats(ctx context.Context, token string) Stats {
	var stats Stats

	fetches := []struct {
		name  string
		count func(context.Context, string) (int, error)
		dst   *int
	}{
		{"projects", d.Projects.Count, &stats.Projects},
		{"programs", d.Programs.Count, &stats.Programs},
		{"media", d.Media.Count, &stats.Media},
		{"opportunities", d.Opportunities.Count, &stats.Opportunities},
		{"contacts", d.Contacts.Count, &stats.Contacts},
		{"volunteers", d.Volunteers.Count, &stats.Volunteers},
		{"sponsorships", d.Sponsorships.Count, &stats.Sponsorships},
		{"partnerships", d.Partnerships.Count, &stats.Partnerships},
	}

	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := f.count(ctx, token)
			if err != nil {
				slog.Warn("dashboard stat fetch failed", "resource", f.name, "error", err)
				return
			}
			*f.dst = n
		}()
	}
	wg.Wait()

	return stats
}

// GetInvolvedSummary holds the three submission collections shown together
// on the get-involved admin panel.
type GetInvolvedSummary struct {
	Volunteers   []Volunteer
	Sponsorships []Sponsorship
	Partnerships []Partnership
}

// GetInvolved fetches volunteers, sponsorships, and partnerships
// concurrently. As with DashboardStats, one failed fetch falls back to an
// empty list for that collection and does not abort the others.
func (d *Directory) GetInvolved(ctx context.Context, token string) GetInvolvedSummary {
	var summary GetInvolvedSummary
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		items, err := d.Volunteers.List(ctx, token)
		if err != nil {
			slog.Warn("get-involved fetch failed", "resource", "volunteers", "error", err)
			return
		}
		summary.Volunteers = items
	}()
	go func() {
		defer wg.Done()
		items, err := d.Sponsorships.List(ctx, token)
		if err != nil {
			slog.Warn("get-involved fetch failed", "resource", "sponsorships", "error", err)
			return
		}
		summary.Sponsorships = items
	}()
	go func() {
		defer wg.Done()
		items, err := d.Partnerships.List(ctx, token)
		if err != nil {
			slog.Warn("get-involved fetch failed", "resource", "partnerships", "error", err)
			return
		}
		summary.Partnerships = items
	}()
	wg.Wait()

	return summary
}
