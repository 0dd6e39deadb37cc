// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
)

const (
	// tokenCookieName is the cookie carrying the session token.
	tokenCookieName = "jwt"

	// loggedOutValue replaces the token on logout.
	loggedOutValue = "loggedout"

	logoutCookieTTL = 10 * time.Second
)

func (h *Handler) tokenCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.app.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *Handler) cookieDuration() time.Duration {
	if h.app.CookieDuration > 0 {
		return h.app.CookieDuration
	}
	return h.app.TokenDuration
}

// sendToken sets the token cookie and answers with the token and the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, status int, user *models.User, token models.Token) {
	http.SetCookie(w, h.tokenCookie(token.SignedString, h.now().Add(h.cookieDuration())))
	h.writeSuccess(w, r, status, models.Envelope{
		Token: token.SignedString,
		Data:  map[string]any{"user": user},
	})
}

// tokenFromRequest returns the bearer token of r, falling back to the token
// cookie. It returns "" when neither is present.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != loggedOutValue {
		return cookie.Value
	}
	return ""
}
