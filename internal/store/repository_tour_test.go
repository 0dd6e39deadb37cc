// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourRepository_Stats(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY UPPER(difficulty)")).
		WithArgs(4.5).
		WillReturnRows(sqlmock.NewRows([]string{"difficulty", "num_tours", "num_ratings", "avg_rating", "avg_price", "min_price", "max_price"}).
			AddRow("EASY", 4, 104, 4.7, 1272.0, 397.0, 1997.0).
			AddRow("DIFFICULT", 2, 21, 4.65, 1997.0, 997.0, 2997.0))

	stats, err := repo.Stats(context.Background(), 4.5)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "EASY", stats[0].Difficulty)
	assert.Equal(t, 104, stats[0].NumRatings)
}

func TestTourRepository_MonthlyPlan_YearBounds(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("jsonb_array_elements_text(t.start_dates)")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"month", "num_tour_starts", "tours"}).
			AddRow(7, 3, `{"The Forest Hiker","The Sea Explorer","The Snow Adventurer"}`))

	plan, err := repo.MonthlyPlan(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, 7, plan[0].Month)
	assert.Equal(t, []string{"The Forest Hiker", "The Sea Explorer", "The Snow Adventurer"}, []string(plan[0].Tours))
}

func TestTourRepository_RecalculateRatings(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tours")).
		WithArgs(testTourID, models.DefaultRatingsAverage).
		WillReturnRows(sqlmock.NewRows([]string{"tour_id", "ratings_average", "ratings_quantity"}).
			AddRow(testTourID, 4.5, 0))

	summary, err := repo.RecalculateRatings(context.Background(), testTourID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingsSummary{TourID: testTourID, RatingsAverage: 4.5, RatingsQuantity: 0}, summary)
}

func TestTourRepository_RecalculateRatings_InvalidID(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	_, err := repo.RecalculateRatings(context.Background(), "42")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestTourRepository_Within(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	radius := 250 / 3963.2
	mock.ExpectQuery(regexp.QuoteMeta("FROM tours WHERE secret_tour = $1 AND (2 * ASIN(")).
		WithArgs(false, 34.11, 34.11, -118.11, radius).
		WillReturnRows(sqlmock.NewRows(tourColumns))

	tours, err := repo.Within(context.Background(), 34.11, -118.11, radius, query.Spec{})
	require.NoError(t, err)
	assert.Empty(t, tours)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTourRepository_Within_InvalidCoordinates(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	_, err := repo.Within(context.Background(), 123, 0, 1, query.Spec{})
	require.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestTourRepository_Distances(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTourRepository(db, db.logger)

	mock.ExpectQuery(regexp.QuoteMeta("AS distance FROM tours WHERE secret_tour = $6")).
		WithArgs(34.11, 34.11, -118.11, earthRadiusMeters, 0.001, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "distance"}).
			AddRow(testTourID, "The Sea Explorer", 1245.3))

	distances, err := repo.Distances(context.Background(), 34.11, -118.11, 0.001)
	require.NoError(t, err)
	require.Len(t, distances, 1)
	assert.InDelta(t, 1245.3, distances[0].Distance, 1e-9)
}
