// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amanifoundation/amani-go/internal/api"
	"github.com/amanifoundation/amani-go/internal/auth"
	"github.com/amanifoundation/amani-go/internal/middleware"
	"github.com/amanifoundation/amani-go/internal/render"
	"github.com/amanifoundation/amani-go/internal/session"
)

// AuthHandler handles the login and logout routes. Credentials are verified
// by the backend API; on success the returned bearer token becomes the only
// thing the session stores.
type AuthHandler struct {
	client          *api.Client
	renderer        *render.Renderer
	sessions        *session.Store
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *api.Client, renderer *render.Renderer, sessions *session.Store, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		client:          client,
		renderer:        renderer,
		sessions:        sessions,
		loginProtection: lp,
	}
}

// LoginData is the view data for the login page.
type LoginData struct {
	Email string
}

// LoginForm renders the login page. Already-signed-in users are redirected:
// admins to the dashboard, everyone else to the homepage.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if token := h.sessions.Token(r.Context()); token != "" {
		if id, err := auth.Decode(token); err == nil {
			if id.IsAdmin() {
				http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
			return
		}
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
		Data:  LoginData{},
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// renderLoginError re-renders the login form with the submitted email kept
// and the error shown inline, so a failed attempt never loses the field.
func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email, message string) {
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title:     "Sign In",
		Data:      LoginData{Email: email},
		Flash:     message,
		FlashType: "error",
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessions, redirectLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLoginError(w, r, email, "Email and password are required.")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.renderLoginError(w, r, email,
				fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	result, err := h.client.Login(r.Context(), email, password)
	if err != nil {
		slog.Warn("login failed", "email", email, "error", err)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				h.renderLoginError(w, r, email,
					fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration)))
				return
			}
		}
		h.renderLoginError(w, r, email, apiErrorMessage(err, "Invalid email or password."))
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Login renews the session token against fixation before storing the
	// bearer token.
	if err := h.sessions.Login(r.Context(), result.Token); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	id, err := auth.Decode(result.Token)
	if err != nil {
		// The backend issued a token the console cannot read. Treat as a
		// failed login rather than storing it.
		slog.Error("backend issued undecodable token", "email", email, "error", err)
		_ = h.sessions.Logout(r.Context())
		h.renderLoginError(w, r, email, "Sign-in failed. Please try again.")
		return
	}

	slog.Info("user logged in", "user_id", id.ID, "email", email)

	name := result.User.Name
	if name == "" {
		name = id.Name
	}
	h.sessions.SetFlash(r.Context(), "Welcome back, "+name+"!", "success")

	if id.IsAdmin() {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var userID string
	if id := middleware.Identity(r); id != nil {
		userID = id.ID
	}

	if err := h.sessions.Logout(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	flashAndRedirect(w, r, h.sessions, redirectLogin, "You have been signed out.", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
