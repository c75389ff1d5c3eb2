// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
)

// requiredFields checks that each named form field has a non-blank value.
// Validation is presence-only; content rules belong to the backend API,
// whose messages are surfaced verbatim. Returns the missing field names.
func requiredFields(r *http.Request, names ...string) []string {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(r.FormValue(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// missingFieldsMessage formats a user-facing message for missing fields.
func missingFieldsMessage(missing []string) string {
	if len(missing) == 1 {
		return "The " + missing[0] + " field is required."
	}
	return "The following fields are required: " + strings.Join(missing, ", ") + "."
}
