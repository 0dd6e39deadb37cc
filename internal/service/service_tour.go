// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// StatsMinRating is the lowest average rating counted by the tour
// statistics.
const StatsMinRating = 4.5

// Distance units of the geo queries. Any unit other than miles is read as
// kilometres.
const (
	UnitMiles      = "mi"
	UnitKilometers = "km"
)

// Earth radius in the supported units, used to turn a distance into an
// angular radius.
const (
	earthRadiusMiles      = 3963.2
	earthRadiusKilometers = 6378.1
)

// Meters to unit factors.
const (
	metersToMiles      = 0.000621371
	metersToKilometers = 0.001
)

type tourService struct {
	*Resource[models.Tour, *models.Tour]

	tours store.TourRepository
}

// NewTourService constructs a [TourService].
func NewTourService(tours store.TourRepository, v validators.Validator, logger *logger.Logger) TourService {
	return &tourService{
		Resource: NewResource[models.Tour]("tour", tours, tourPipeline(v), logger),
		tours:    tours,
	}
}

func (s *tourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	stats, err := s.tours.Stats(ctx, StatsMinRating)
	if err != nil {
		return nil, fmt.Errorf("error computing tour stats: %w", err)
	}
	return stats, nil
}

func (s *tourService) MonthlyPlan(ctx context.Context, year string) ([]models.MonthlyPlan, error) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return nil, newError(ErrInvalidDataProvided, "Please provide a valid year")
	}

	plan, err := s.tours.MonthlyPlan(ctx, y)
	if err != nil {
		return nil, fmt.Errorf("error computing monthly plan: %w", err)
	}
	return plan, nil
}

func (s *tourService) Within(ctx context.Context, distance, latlng, unit string, spec query.Spec) ([]models.Tour, error) {
	lat, lng, err := parseLatLng(latlng)
	if err != nil {
		return nil, err
	}

	d, err := strconv.ParseFloat(distance, 64)
	if err != nil || d < 0 {
		return nil, newError(ErrInvalidDataProvided, "Please provide a valid distance")
	}

	radius := d / earthRadiusKilometers
	if unit == UnitMiles {
		radius = d / earthRadiusMiles
	}

	tours, err := s.tours.Within(ctx, lat, lng, radius, spec)
	if err != nil {
		return nil, fmt.Errorf("error finding tours within %s%s: %w", distance, unit, err)
	}
	return tours, nil
}

func (s *tourService) Distances(ctx context.Context, latlng, unit string) ([]models.TourDistance, error) {
	lat, lng, err := parseLatLng(latlng)
	if err != nil {
		return nil, err
	}

	multiplier := metersToKilometers
	if unit == UnitMiles {
		multiplier = metersToMiles
	}

	distances, err := s.tours.Distances(ctx, lat, lng, multiplier)
	if err != nil {
		return nil, fmt.Errorf("error computing distances: %w", err)
	}
	return distances, nil
}

func parseLatLng(latlng string) (float64, float64, error) {
	invalid := newError(ErrInvalidDataProvided, "Please provide latitude and longitude in the format lat,lng.")

	latRaw, lngRaw, ok := strings.Cut(latlng, ",")
	if !ok {
		return 0, 0, invalid
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return 0, 0, invalid
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return 0, 0, invalid
	}
	return lat, lng, nil
}
