// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-natours/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier
// in the context.
var UserIDCtxKey = contextKey("userID")

// CurrentUserCtxKey is the key used to store the authenticated
// [models.User] in the context.
var CurrentUserCtxKey = contextKey("currentUser")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns ok == false when the value is missing or is not a non-empty string.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithCurrentUser returns a copy of ctx carrying user and its id.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, CurrentUserCtxKey, user)
	return context.WithValue(ctx, UserIDCtxKey, user.ID)
}

// CurrentUser returns the user stored by [WithCurrentUser].
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(*models.User)
	return user, ok && user != nil
}
