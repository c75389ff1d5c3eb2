// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth derives the signed-in user's identity from the bearer token
// issued by the backend API. The token is decoded locally without signature
// verification: the backend is the sole authority and re-checks the token on
// every API call, so the web console only needs the claims for display and
// routing decisions.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role granted access to the back-office. The
// comparison is exact and case-sensitive: "Admin" or "ADMIN" do not match.
const RoleAdmin = "admin"

// ErrMalformedToken indicates the stored token could not be decoded. The
// session holding it is unusable and should be destroyed.
var ErrMalformedToken = errors.New("malformed bearer token")

// ErrTokenExpired indicates the token carries an exp claim in the past.
var ErrTokenExpired = errors.New("bearer token expired")

// Identity is the set of claims the console reads from the bearer token.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// IsAdmin reports whether the identity may enter the back-office.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

type claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts the identity claims from a bearer token. The signature is
// not verified; an expired token returns ErrTokenExpired so callers can
// clear the session rather than hand the backend a token it will reject.
func Decode(token string) (Identity, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Identity{}, ErrMalformedToken
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return Identity{}, ErrTokenExpired
	}

	id := Identity{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
	if id.ID == "" {
		id.ID = c.Subject
	}
	return id, nil
}
