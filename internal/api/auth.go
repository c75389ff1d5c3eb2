// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// LoginResult is the backend's answer to a successful credential check.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token. The request is always
// unauthenticated; a failed check surfaces as an *Error carrying the
// backend's message.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]any{"email": email, "password": password}
	data, err := c.Do(ctx, http.MethodPost, "/users/login", "", body)
	if err != nil {
		return nil, err
	}

	// The token and user sit beside the envelope fields, not under a
	// payload key.
	var result LoginResult
	if err := payload(data, &result.Token, "token"); err != nil {
		return nil, err
	}
	if err := payload(data, &result.User, "user"); err != nil {
		return nil, err
	}
	return &result, nil
}
