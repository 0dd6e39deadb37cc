// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
	"github.com/rs/zerolog"
)

// protect is an HTTP middleware that enforces JWT-based authentication.
//
// The token is taken from the "Authorization: Bearer" header or, failing
// that, from the jwt cookie and checked via
// [service.AuthService.Authenticate]. On success the user is stored in the
// request context with [utils.WithCurrentUser] and the request logger gains
// a user_id field. Every failure is answered with 401 Unauthorized.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.services.AuthService.Authenticate(r.Context(), tokenFromRequest(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

// identify stores the user of a valid token in the request context and
// lets anonymous requests through.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.AuthService.Authenticate(r.Context(), token)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("ignoring invalid token on public route")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

func withUser(r *http.Request, user *models.User) *http.Request {
	l := logger.FromRequest(r).GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user_id", user.ID)
	})

	ctx := utils.WithCurrentUser(l.WithContext(r.Context()), user)
	return r.WithContext(ctx)
}

// restrictTo lets through authenticated users with one of roles and
// answers everyone else with 403 Forbidden. It must run after protect.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.CurrentUser(r.Context())
			if !ok {
				h.writeError(w, r, ErrNoCurrentUser)
				return
			}
			if !slices.Contains(roles, user.Role) {
				h.writeError(w, r, &service.Error{Err: service.ErrForbidden, Message: msgForbidden})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
