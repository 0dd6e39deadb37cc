// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrRouteNotFound is returned for paths no route is registered for.
	ErrRouteNotFound = errors.New("route not found")

	// ErrNoCurrentUser is returned when a handler behind protect finds no
	// user in the request context.
	ErrNoCurrentUser = errors.New("no current user in request context")
)

// Client-facing messages of errors that carry none of their own.
const (
	msgNotFound         = "No document found with that ID"
	msgDuplicate        = "Duplicate field value. Please use another value!"
	msgInvalidID        = "Invalid ID."
	msgInvalidReference = "Referenced document does not exist."
	msgInvalidInput     = "Invalid input data."
	msgInvalidJSON      = "Invalid JSON body."
	msgServerError      = "Something went very wrong!"
	msgNotLoggedIn      = "You are not logged in! Please log in to get access."
	msgForbidden        = "You do not have permission to perform this action"
	msgRouteNotFoundFmt = "Can't find %s on this server!"
	msgTokenSent        = "Token sent to email!"
)
