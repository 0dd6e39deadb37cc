// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", user.ID).Msg("user signed up")
	h.sendToken(w, r, http.StatusCreated, user, token)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("user logged in")
	h.sendToken(w, r, http.StatusOK, user, token)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.tokenCookie(loggedOutValue, h.now().Add(logoutCookieTTL)))
	h.writeSuccess(w, r, http.StatusOK, models.Envelope{})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email, h.baseURL(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, models.Envelope{Message: msgTokenSent})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sendToken(w, r, http.StatusOK, user, token)
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoCurrentUser)
		return
	}

	var req models.UpdatePasswordRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.UpdatePassword(r.Context(), current.ID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sendToken(w, r, http.StatusOK, user, token)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoCurrentUser)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), current.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeDocument(w, r, http.StatusOK, dataKey, user)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoCurrentUser)
		return
	}

	patch, err := readPatch(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateMe(r.Context(), current.ID, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeDocument(w, r, http.StatusOK, "user", user)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.CurrentUser(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoCurrentUser)
		return
	}

	if err := h.services.UserService.DeleteMe(r.Context(), current.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", current.ID).Msg("user deactivated")
	w.WriteHeader(http.StatusNoContent)
}

// baseURL is the public origin used in password reset links.
func (h *Handler) baseURL(r *http.Request) string {
	if h.app.BaseURL != "" {
		return strings.TrimRight(h.app.BaseURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
