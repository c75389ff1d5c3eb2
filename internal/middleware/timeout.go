// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds every request to d. The backend API client deliberately
// carries no timeout of its own, so this is the only bound on a stuck
// upstream call. A request that overruns gets a 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "Request timeout")
	}
}
