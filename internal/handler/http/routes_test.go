// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionRoute(t *testing.T) {
	h, _ := newTestHandler(t, testAppConfig())

	rec := serve(h, http.MethodGet, "/api/v1/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"version":"1.2.3"}}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t, testAppConfig())

	rec := serve(h, http.MethodGet, "/api/v1/bookings", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"fail","message":"Can't find /api/v1/bookings on this server!"}`, rec.Body.String())
}

func TestRouteAccess(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
	}{
		{name: "public tour list", method: http.MethodGet, path: "/api/v1/tours", wantCode: http.StatusOK},
		{name: "public post list", method: http.MethodGet, path: "/api/v1/posts", wantCode: http.StatusOK},
		{name: "public comment list", method: http.MethodGet, path: "/api/v1/comments", wantCode: http.StatusOK},
		{name: "reviews need login", method: http.MethodGet, path: "/api/v1/reviews", wantCode: http.StatusUnauthorized},
		{name: "reviews with login", method: http.MethodGet, path: "/api/v1/reviews", token: userToken, wantCode: http.StatusOK},
		{name: "tour reviews need login", method: http.MethodGet, path: "/api/v1/tours/t1/reviews", wantCode: http.StatusUnauthorized},
		{name: "user list is admin only", method: http.MethodGet, path: "/api/v1/users", token: userToken, wantCode: http.StatusForbidden},
		{name: "user list as admin", method: http.MethodGet, path: "/api/v1/users", token: adminToken, wantCode: http.StatusOK},
		{name: "create tour as user", method: http.MethodPost, path: "/api/v1/tours", token: userToken, wantCode: http.StatusForbidden},
		{name: "delete tour anonymously", method: http.MethodDelete, path: "/api/v1/tours/t1", wantCode: http.StatusUnauthorized},
		{name: "monthly plan as user", method: http.MethodGet, path: "/api/v1/tours/monthly-plan/2021", token: userToken, wantCode: http.StatusForbidden},
		{name: "review as admin", method: http.MethodPost, path: "/api/v1/reviews", token: adminToken, wantCode: http.StatusForbidden},
		{name: "review on tour as guide", method: http.MethodPost, path: "/api/v1/tours/t1/reviews", token: guideToken, wantCode: http.StatusForbidden},
		{name: "create post anonymously", method: http.MethodPost, path: "/api/v1/posts", wantCode: http.StatusUnauthorized},
		{name: "delete comment anonymously", method: http.MethodDelete, path: "/api/v1/comments/c1", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, testAppConfig())

			rec := serve(h, tt.method, tt.path, tt.token, nil)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestGetTour_SecretToursNeedStaffRole(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantOpts int
	}{
		{name: "anonymous", wantOpts: 1},
		{name: "user", token: userToken, wantOpts: 1},
		{name: "lead guide", token: guideToken, wantOpts: 2},
		{name: "admin", token: adminToken, wantOpts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fakes := newTestHandler(t, testAppConfig())
			var gotOpts int
			fakes.tours.getFn = func(_ context.Context, id string, opts ...service.ReadOption) (*models.Tour, error) {
				gotOpts = len(opts)
				return &models.Tour{ID: id}, nil
			}

			rec := serve(h, http.MethodGet, "/api/v1/tours/t1?includeSecret=true", tt.token, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOpts, gotOpts)
		})
	}
}

func TestTourStatsRoute(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())
	fakes.tours.statsFn = func(context.Context) ([]models.TourStats, error) {
		return []models.TourStats{{Difficulty: "EASY", NumTours: 4, AvgPrice: 1272}}, nil
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/tour-stats", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	stats := dataAs[[]models.TourStats](t, decodeEnvelope(t, rec), "stats")
	require.Len(t, stats, 1)
	assert.Equal(t, "EASY", stats[0].Difficulty)
}

func TestMonthlyPlanRoute(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())
	var gotYear string
	fakes.tours.planFn = func(_ context.Context, year string) ([]models.MonthlyPlan, error) {
		gotYear = year
		return []models.MonthlyPlan{{Month: 7, NumTourStarts: 3, Tours: []string{"The Sea Explorer"}}}, nil
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/monthly-plan/2021", guideToken, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2021", gotYear)
	plan := dataAs[[]models.MonthlyPlan](t, decodeEnvelope(t, rec), "plan")
	require.Len(t, plan, 1)
	assert.Equal(t, 7, plan[0].Month)
}

func TestMonthlyPlanRoute_InvalidYear(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())
	fakes.tours.planFn = func(context.Context, string) ([]models.MonthlyPlan, error) {
		return nil, &service.Error{Err: service.ErrInvalidDataProvided, Message: "Invalid year."}
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/monthly-plan/abc", adminToken, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid year.", decodeEnvelope(t, rec).Message)
}

func TestToursWithinRoute(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())

	var distance, latlng, unit string
	var spec query.Spec
	fakes.tours.withinFn = func(_ context.Context, d, ll, u string, s query.Spec) ([]models.Tour, error) {
		distance, latlng, unit, spec = d, ll, u, s
		return []models.Tour{{ID: "t1"}}, nil
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/tours-within/200/center/34.1,-118.1/unit/mi?difficulty=easy", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "200", distance)
	assert.Equal(t, "34.1,-118.1", latlng)
	assert.Equal(t, "mi", unit)
	assert.Equal(t, []query.Condition{{Field: "difficulty", Op: query.OpEq, Value: "easy"}}, spec.Filters)

	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Results)
	assert.Equal(t, 1, *body.Results)
}

func TestDistancesRoute(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())
	fakes.tours.distancesFn = func(_ context.Context, latlng, unit string) ([]models.TourDistance, error) {
		assert.Equal(t, "34.1,-118.1", latlng)
		assert.Equal(t, "km", unit)
		return []models.TourDistance{{ID: "t1", Name: "The Sea Explorer", Distance: 12.5}}, nil
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/distances/34.1,-118.1/unit/km", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	distances := dataAs[[]models.TourDistance](t, decodeEnvelope(t, rec), dataKey)
	require.Len(t, distances, 1)
	assert.InDelta(t, 12.5, distances[0].Distance, 1e-9)
}

func TestPanicIsRecovered(t *testing.T) {
	h, fakes := newTestHandler(t, testAppConfig())
	fakes.tours.statsFn = func(context.Context) ([]models.TourStats, error) {
		panic("boom")
	}

	rec := serve(h, http.MethodGet, "/api/v1/tours/tour-stats", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
