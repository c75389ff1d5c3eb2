// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the client for the foundation's backend content API.
// All reads and writes performed by the web console go through a single
// Client that carries the configured base URL and attaches the caller's
// bearer token to each request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// UserAgent is sent with every outgoing API request.
const UserAgent = "amani-web/1.0"

// Error is a failure reported by the backend API. Message carries the
// server-provided message verbatim when the response included one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api request failed with status %d", e.StatusCode)
}

// ErrDecode indicates the backend returned a body that could not be parsed
// as the expected JSON envelope.
var ErrDecode = errors.New("malformed api response")

// Client is the configured backend API client. It deliberately carries no
// retry, timeout, or backoff policy: a failed request surfaces immediately
// to the caller, which matches the low-traffic admin workload this serves.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. The URL must be absolute;
// configuration validates this before the process accepts traffic.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute, got %q", baseURL)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the common wrapper shape of every backend response:
// {"success": bool, "message": "...", "<resource>": <payload>}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Do performs one API request. A non-empty token is attached as a bearer
// Authorization header; an empty token sends the request unauthenticated.
// The raw response body is returned for payload extraction by the caller.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading api response: %w", err)
	}

	var env envelope
	if len(data) > 0 {
		// A body that is not valid JSON on a 2xx response means the
		// envelope contract is broken; on an error status we still fall
		// through and report the status code.
		if err := json.Unmarshal(data, &env); err != nil && resp.StatusCode < 400 {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return data, nil
}

// payload extracts the resource payload from an envelope body, trying the
// given keys in order. Backends are inconsistent about whether the payload
// sits under "data" or the resource name, so callers pass both.
func payload(data []byte, out any, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decoding %q: %v", ErrDecode, key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: no payload under keys %v", ErrDecode, keys)
}

// Ping issues an unauthenticated GET against the API base URL. Any HTTP
// response, including an error status, proves the backend is reachable;
// only transport failures count as unreachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("creating ping request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
