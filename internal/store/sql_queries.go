// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"math"

	sq "github.com/Masterminds/squirrel"
)

const (
	// tourStats groups well rated public tours by difficulty.
	tourStats = `SELECT UPPER(difficulty) AS difficulty,
		COUNT(*) AS num_tours,
		COALESCE(SUM(ratings_quantity), 0) AS num_ratings,
		AVG(ratings_average) AS avg_rating,
		AVG(price) AS avg_price,
		MIN(price) AS min_price,
		MAX(price) AS max_price
	FROM tours
	WHERE ratings_average >= $1 AND secret_tour = false
	GROUP BY UPPER(difficulty)
	ORDER BY avg_price ASC;`

	// monthlyPlan unwinds tour start dates within [$1, $2) and counts them
	// per month.
	monthlyPlan = `SELECT EXTRACT(MONTH FROM s.start_date)::int AS month,
		COUNT(*) AS num_tour_starts,
		ARRAY_AGG(t.name ORDER BY t.name) AS tours
	FROM tours t
	CROSS JOIN LATERAL (
		SELECT value::timestamptz AS start_date
		FROM jsonb_array_elements_text(t.start_dates)
	) s
	WHERE t.secret_tour = false AND s.start_date >= $1 AND s.start_date < $2
	GROUP BY month
	ORDER BY num_tour_starts DESC, month ASC
	LIMIT 12;`

	// recalculateRatings stores the rounded average and count of the reviews
	// of one tour. A tour without reviews falls back to the default rating $2.
	recalculateRatings = `UPDATE tours
	SET ratings_quantity = s.quantity,
		ratings_average = COALESCE(s.average, $2)
	FROM (
		SELECT COUNT(*) AS quantity, ROUND(AVG(rating)::numeric, 1)::float8 AS average
		FROM reviews
		WHERE tour_id = $1
	) s
	WHERE tours.id = $1
	RETURNING tours.id AS tour_id, tours.ratings_average, tours.ratings_quantity;`

	// clearExpiredResetTokens forgets reset tokens that can no longer be used.
	clearExpiredResetTokens = `UPDATE users
	SET password_reset_token = NULL, password_reset_expires = NULL
	WHERE password_reset_expires IS NOT NULL AND password_reset_expires <= $1;`

	// tourIDsByUser lists the tours a user has reviewed.
	tourIDsByUser = `SELECT DISTINCT tour_id
	FROM reviews
	WHERE user_id = $1
	ORDER BY tour_id;`
)

// Earth radius in meters used by the great-circle expressions.
const earthRadiusMeters = 6378137.0

const (
	startLng = `(start_location->'coordinates'->>0)::float8`
	startLat = `(start_location->'coordinates'->>1)::float8`
)

// angularDistance returns a haversine expression for the central angle in
// radians between the tour start location and (lat, lng).
func angularDistance(lat, lng float64) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf(
		"(2 * ASIN(SQRT(POWER(SIN((RADIANS(%[1]s) - RADIANS(?)) / 2), 2) + "+
			"COS(RADIANS(?)) * COS(RADIANS(%[1]s)) * POWER(SIN((RADIANS(%[2]s) - RADIANS(?)) / 2), 2))))",
		startLat, startLng,
	), lat, lat, lng)
}

// withinRadius matches tours starting within radius radians of (lat, lng).
func withinRadius(lat, lng, radius float64) sq.Sqlizer {
	stmt, args, _ := angularDistance(lat, lng).ToSql()
	return sq.Expr(stmt+" <= ?", append(args, radius)...)
}

// validCoordinates reports whether lat and lng are usable in the expressions.
func validCoordinates(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lng) && lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
