// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amanifoundation/amani-go/internal/auth"
	"github.com/amanifoundation/amani-go/internal/middleware"
)

// identityOf returns the request's decoded identity, or nil on public
// routes.
func identityOf(r *http.Request) *auth.Identity {
	return middleware.Identity(r)
}
