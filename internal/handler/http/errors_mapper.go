// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:        http.StatusBadRequest,
	service.ErrInvalidOrExpiredResetToken: http.StatusBadRequest,
	service.ErrWrongPassword:              http.StatusUnauthorized,
	service.ErrNotAuthenticated:           http.StatusUnauthorized,
	service.ErrInvalidToken:               http.StatusUnauthorized,
	service.ErrExpiredToken:               http.StatusUnauthorized,
	service.ErrForbidden:                  http.StatusForbidden,
	service.ErrDeliveryFailed:             http.StatusInternalServerError,
	service.ErrTokenCreationFailed:        http.StatusInternalServerError,

	validators.ErrValidation: http.StatusBadRequest,
	query.ErrInvalidQuery:    http.StatusBadRequest,
	utils.ErrInvalidJSON:     http.StatusBadRequest,

	store.ErrNotFound:            http.StatusNotFound,
	store.ErrInvalidID:           http.StatusBadRequest,
	store.ErrAlreadyExists:       http.StatusConflict,
	store.ErrInvalidReference:    http.StatusBadRequest,
	store.ErrConstraintViolation: http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,

	ErrRouteNotFound: http.StatusNotFound,
	ErrNoCurrentUser: http.StatusUnauthorized,
}

// statusFromError maps err onto an HTTP status. A [service.Error] is mapped
// by its sentinel alone so that its cause cannot change the status.
func statusFromError(err error) int {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		err = svcErr.Err
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message of err and the failed
// validation rules, if any. Server errors are masked in production.
func messageFromError(err error, status int, production bool) (string, []models.FieldError) {
	var validationErr *validators.Errors
	if errors.As(err, &validationErr) {
		return validationErr.Error(), validationErr.Fields
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) && (status < http.StatusInternalServerError || !production) {
		return svcErr.Message, nil
	}

	if status >= http.StatusInternalServerError {
		if production {
			return msgServerError, nil
		}
		return err.Error(), nil
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return msgNotFound, nil
	case errors.Is(err, store.ErrAlreadyExists):
		return msgDuplicate, nil
	case errors.Is(err, store.ErrInvalidID):
		return msgInvalidID, nil
	case errors.Is(err, store.ErrInvalidReference):
		return msgInvalidReference, nil
	case errors.Is(err, store.ErrConstraintViolation):
		return msgInvalidInput, nil
	case errors.Is(err, utils.ErrInvalidJSON):
		return msgInvalidJSON, nil
	case errors.Is(err, ErrNoCurrentUser):
		return msgNotLoggedIn, nil
	}
	return err.Error(), nil
}

// writeError logs err and writes the error envelope. Client errors are
// "fail", server errors "error".
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message, fields := messageFromError(err, status, h.app.IsProduction())

	body := models.ErrorEnvelope{Status: models.StatusFail, Message: message, Errors: fields}
	if status >= http.StatusInternalServerError {
		body.Status = models.StatusError
		log.Err(err).Str("uri", r.RequestURI).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("uri", r.RequestURI).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// notFound answers requests to unknown routes.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, &service.Error{
		Err:     ErrRouteNotFound,
		Message: fmt.Sprintf(msgRouteNotFoundFmt, r.URL.Path),
	})
}
