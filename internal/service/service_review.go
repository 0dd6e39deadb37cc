// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// ratings keeps the rating summary of tours in line with their reviews.
type ratings struct {
	tours store.TourRepository
}

func (r *ratings) recalculate(ctx context.Context, tourIDs ...string) error {
	log := logger.FromContext(ctx)

	seen := make(map[string]struct{}, len(tourIDs))
	for _, id := range tourIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		summary, err := r.tours.RecalculateRatings(ctx, id)
		if err != nil {
			log.Err(err).Str("tour_id", id).Msg("error recalculating ratings")
			return fmt.Errorf("error recalculating ratings of tour %s: %w", id, err)
		}
		log.Debug().
			Str("tour_id", id).
			Float64("ratings_average", summary.RatingsAverage).
			Int("ratings_quantity", summary.RatingsQuantity).
			Msg("ratings recalculated")
	}
	return nil
}

// NewReviewService constructs the review [CRUDService]. Users change only
// their own reviews and every write recomputes the tour ratings.
func NewReviewService(reviews store.ReviewRepository, tours store.TourRepository, v validators.Validator, logger *logger.Logger) CRUDService[models.Review] {
	ratings := &ratings{tours: tours}
	res := NewResource[models.Review]("review", reviews, reviewPipeline(v), logger)
	res.authorize = ownerOrAdmin[models.Review]
	res.afterSave = append(res.afterSave, func(ctx context.Context, w *Write[models.Review]) error {
		ids := []string{w.Record.Tour.ID}
		if w.Previous != nil {
			ids = append(ids, w.Previous.Tour.ID)
		}
		return ratings.recalculate(ctx, ids...)
	})
	res.afterDelete = append(res.afterDelete, func(ctx context.Context, rec *models.Review) error {
		return ratings.recalculate(ctx, rec.Tour.ID)
	})
	return res
}

// NewPostService constructs the post [CRUDService].
func NewPostService(posts store.PostRepository, v validators.Validator, logger *logger.Logger) CRUDService[models.Post] {
	res := NewResource[models.Post]("post", posts, postPipeline(v), logger)
	res.authorize = ownerOrAdmin[models.Post]
	return res
}

// NewCommentService constructs the comment [CRUDService].
func NewCommentService(comments store.CommentRepository, v validators.Validator, logger *logger.Logger) CRUDService[models.Comment] {
	res := NewResource[models.Comment]("comment", comments, commentPipeline(v), logger)
	res.authorize = ownerOrAdmin[models.Comment]
	return res
}
