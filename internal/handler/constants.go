// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/{id}/edit"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/{id}/delete"
	// RouteSuffixToggle is the suffix for flag toggle routes.
	RouteSuffixToggle = "/{id}/toggle"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamRef is the id-slug reference pattern used on public pages.
	RouteParamRef = "/{ref}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
)

const (
	redirectAdmin       = "/admin"
	redirectLogin       = RouteLogin
	redirectHome        = RouteRoot
	redirectGetInvolved = "/get-involved"
	redirectContact     = "/contact"
)
