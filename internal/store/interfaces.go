// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/models"
)

// CRUD is the generic persistence contract shared by every resource.
// [Repository] implements it for any model.
type CRUD[T any] interface {
	Create(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id string, opts ...FindOption) (*T, error)
	FindOne(ctx context.Context, opts ...FindOption) (*T, error)
	Find(ctx context.Context, spec query.Spec, opts ...FindOption) ([]T, error)
	Count(ctx context.Context, spec query.Spec, opts ...FindOption) (int, error)
	Update(ctx context.Context, rec *T, opts ...FindOption) error
	UpdateFields(ctx context.Context, id string, set map[string]any, opts ...FindOption) error
	Delete(ctx context.Context, id string, opts ...FindOption) error
	Fields() query.Fields
}

// UserRepository persists user accounts.
type UserRepository interface {
	CRUD[models.User]

	// FindByEmail looks up an active user by normalized email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByResetToken looks up an active user holding the hashed reset
	// token that is still valid at now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// SetPasswordReset stores or clears (nil, nil) the reset token.
	SetPasswordReset(ctx context.Context, id string, tokenHash *string, expires *time.Time) error

	// Deactivate soft deletes a user.
	Deactivate(ctx context.Context, id string) error

	// ClearExpiredResetTokens removes reset tokens expired at now and returns
	// how many accounts were touched.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// TourRepository persists tours and runs the tour aggregations.
type TourRepository interface {
	CRUD[models.Tour]

	Stats(ctx context.Context, minRating float64) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)

	// Within returns public tours starting within radius radians of the point.
	Within(ctx context.Context, lat, lng, radius float64, spec query.Spec) ([]models.Tour, error)

	// Distances returns every public tour with the distance of its start
	// from the point, in meters scaled by multiplier, nearest first.
	Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error)

	// RecalculateRatings recomputes the rating summary of one tour from its
	// reviews.
	RecalculateRatings(ctx context.Context, tourID string) (models.RatingsSummary, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	CRUD[models.Review]

	// TourIDsByUser lists the tours reviewed by a user.
	TourIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// PostRepository persists posts.
type PostRepository interface {
	CRUD[models.Post]
}

// CommentRepository persists comments on posts.
type CommentRepository interface {
	CRUD[models.Comment]
}
