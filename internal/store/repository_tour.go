// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/models"
	"github.com/google/uuid"
)

// tourRepository is the PostgreSQL-backed implementation of [TourRepository].
type tourRepository struct {
	*Repository[models.Tour, *models.Tour]
	db     *DB
	logger *logger.Logger
}

// NewTourRepository constructs a [TourRepository] backed by db.
func NewTourRepository(db *DB, log *logger.Logger) TourRepository {
	return &tourRepository{
		Repository: NewRepository[models.Tour](db, TourSchema, log),
		db:         db,
		logger:     log,
	}
}

// Stats groups public tours rated at least minRating by difficulty, cheapest
// average price first.
func (r *tourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	log := logger.FromContext(ctx)

	stats := make([]models.TourStats, 0)
	if err := r.db.SelectContext(ctx, &stats, tourStats, minRating); err != nil {
		log.Err(err).Str("func", "*tourRepository.Stats").Msg("error aggregating tour stats")
		return nil, classify(toursTable, err)
	}

	return stats, nil
}

// MonthlyPlan counts tour starts per month of year, busiest month first.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	log := logger.FromContext(ctx)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	plan := make([]models.MonthlyPlan, 0)
	if err := r.db.SelectContext(ctx, &plan, monthlyPlan, from, to); err != nil {
		log.Err(err).Str("func", "*tourRepository.MonthlyPlan").Int("year", year).Msg("error aggregating monthly plan")
		return nil, classify(toursTable, err)
	}

	return plan, nil
}

func (r *tourRepository) Within(ctx context.Context, lat, lng, radius float64, spec query.Spec) ([]models.Tour, error) {
	if !validCoordinates(lat, lng) || radius < 0 {
		return nil, fmt.Errorf("%w: coordinates out of range", query.ErrInvalidQuery)
	}

	return r.Find(ctx, spec, Where(withinRadius(lat, lng, radius)))
}

func (r *tourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	log := logger.FromContext(ctx)

	if !validCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: coordinates out of range", query.ErrInvalidQuery)
	}

	angle, angleArgs, err := angularDistance(lat, lng).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	stmt, args, err := psql.Select("id", "name").
		Column("("+angle+" * ? * ?) AS distance", append(angleArgs, earthRadiusMeters, multiplier)...).
		From(toursTable).
		Where(publicTours).
		Where(startLat + " IS NOT NULL").
		OrderBy("distance ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	distances := make([]models.TourDistance, 0)
	if err = r.db.SelectContext(ctx, &distances, stmt, args...); err != nil {
		log.Err(err).Str("func", "*tourRepository.Distances").Msg("error calculating distances")
		return nil, classify(toursTable, err)
	}

	return distances, nil
}

func (r *tourRepository) RecalculateRatings(ctx context.Context, tourID string) (models.RatingsSummary, error) {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(tourID); err != nil {
		return models.RatingsSummary{}, fmt.Errorf("%s %q: %w", toursTable, tourID, ErrInvalidID)
	}

	var summary models.RatingsSummary
	if err := r.db.GetContext(ctx, &summary, recalculateRatings, tourID, models.DefaultRatingsAverage); err != nil {
		log.Err(err).Str("func", "*tourRepository.RecalculateRatings").Str("tour", tourID).Msg("error recalculating ratings")
		return models.RatingsSummary{}, classify(toursTable, err)
	}

	log.Debug().Str("func", "*tourRepository.RecalculateRatings").
		Str("tour", tourID).
		Float64("ratings_average", summary.RatingsAverage).
		Int("ratings_quantity", summary.RatingsQuantity).
		Msg("ratings recalculated")

	return summary, nil
}
