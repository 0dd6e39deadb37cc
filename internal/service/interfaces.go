// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/models"
)

// ReadOption tunes a single read, see [Unscoped] and [Populate].
type ReadOption = store.FindOption

var (
	// Unscoped lifts the default visibility scope (inactive users, secret
	// tours). Only admin routes pass it.
	Unscoped = store.Unscoped

	// Populate loads related entities by relation name.
	Populate = store.Populate
)

// CRUDService is the generic create/read/update/delete contract served by
// [Resource] for every resource.
type CRUDService[T any] interface {
	// Create runs the write pipeline over rec and persists it.
	Create(ctx context.Context, rec *T) (*T, error)

	// Get returns one record by id.
	Get(ctx context.Context, id string, opts ...ReadOption) (*T, error)

	// List returns the records selected by spec.
	List(ctx context.Context, spec query.Spec, opts ...ReadOption) ([]T, error)

	// Update merges the JSON patch onto the stored record, runs the write
	// pipeline and persists the result.
	Update(ctx context.Context, id string, patch []byte, opts ...ReadOption) (*T, error)

	// Delete removes one record by id.
	Delete(ctx context.Context, id string, opts ...ReadOption) error

	// Fields is the allow-list of queryable fields.
	Fields() query.Fields
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(userID string) (models.Token, error)
	Verify(tokenString string) (models.Token, error)
}

// AuthService covers the account lifecycle: signup, login, request
// authentication and the password flows.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, models.Token, error)

	// Authenticate verifies a session token and resolves its active subject.
	// Every failure is reported as ErrNotAuthenticated.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)

	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (*models.User, models.Token, error)
	UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (*models.User, models.Token, error)
}

// UserService manages user accounts.
type UserService interface {
	CRUDService[models.User]

	// UpdateMe changes the profile (name, email, photo) of the current user.
	UpdateMe(ctx context.Context, userID string, patch []byte) (*models.User, error)

	// DeleteMe soft deletes the current user.
	DeleteMe(ctx context.Context, userID string) error
}

// TourService manages tours and runs the tour statistics.
type TourService interface {
	CRUDService[models.Tour]

	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year string) ([]models.MonthlyPlan, error)

	// Within lists the tours starting within distance (in unit) of latlng.
	Within(ctx context.Context, distance, latlng, unit string, spec query.Spec) ([]models.Tour, error)

	// Distances lists every tour with the distance (in unit) of its start
	// from latlng.
	Distances(ctx context.Context, latlng, unit string) ([]models.TourDistance, error)
}

// AppInfoService exposes build information of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
