// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

// Directory bundles the typed collection clients for every backend resource
// the console manages. Handlers receive the whole directory and pick the
// collections they need.
type Directory struct {
	Client *Client

	Projects      *Collection[Project]
	Programs      *Collection[Program]
	Media         *Collection[MediaItem]
	Opportunities *Collection[Opportunity]
	Contacts      *Collection[Contact]
	Volunteers    *Collection[Volunteer]
	Sponsorships  *Collection[Sponsorship]
	Partnerships  *Collection[Partnership]
	Events        *Collection[FeaturedEvent]
	Users         *Collection[User]
}

// NewDirectory creates collection clients for all resources over one Client.
func NewDirectory(c *Client) *Directory {
	return &Directory{
		Client:        c,
		Projects:      NewCollection[Project](c, Endpoints{Name: "projects"}),
		Programs:      NewCollection[Program](c, Endpoints{Name: "programs"}),
		Media:         NewCollection[MediaItem](c, Endpoints{Name: "media"}),
		Opportunities: NewCollection[Opportunity](c, Endpoints{Name: "opportunities", FlagPath: "active-status"}),
		Contacts:      NewCollection[Contact](c, Endpoints{Name: "contact", Key: "contacts", FlagPath: "read-status"}),
		Volunteers:    NewCollection[Volunteer](c, Endpoints{Name: "volunteers"}),
		Sponsorships:  NewCollection[Sponsorship](c, Endpoints{Name: "sponsorships"}),
		Partnerships:  NewCollection[Partnership](c, Endpoints{Name: "partnerships"}),
		Events:        NewCollection[FeaturedEvent](c, Endpoints{Name: "featured-events", Key: "events", FlagPath: "featured-status"}),
		Users:         NewCollection[User](c, Endpoints{Name: "users"}),
	}
}
