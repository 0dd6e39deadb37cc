// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/models"
)

type reviewRepository struct {
	*Repository[models.Review, *models.Review]
	db     *DB
	logger *logger.Logger
}

// NewReviewRepository constructs a [ReviewRepository] backed by db.
func NewReviewRepository(db *DB, log *logger.Logger) ReviewRepository {
	return &reviewRepository{
		Repository: NewRepository[models.Review](db, ReviewSchema, log),
		db:         db,
		logger:     log,
	}
}

func (r *reviewRepository) TourIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &ids, tourIDsByUser, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reviewRepository.TourIDsByUser").Msg("error listing reviewed tours")
		return nil, classify(reviewsTable, err)
	}
	return ids, nil
}
