// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Difficulty of a tour.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

const (
	// DefaultRatingsAverage is the rating of a tour without reviews.
	DefaultRatingsAverage = 4.5
)

// Tour is a bookable tour.
type Tour struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Slug            string         `db:"slug" json:"slug"`
	Duration        int            `db:"duration" json:"duration"`
	MaxGroupSize    int            `db:"max_group_size" json:"maxGroupSize"`
	Difficulty      Difficulty     `db:"difficulty" json:"difficulty"`
	RatingsAverage  float64        `db:"ratings_average" json:"ratingsAverage"`
	RatingsQuantity int            `db:"ratings_quantity" json:"ratingsQuantity"`
	Price           float64        `db:"price" json:"price"`
	PriceDiscount   *float64       `db:"price_discount" json:"priceDiscount,omitempty"`
	Summary         string         `db:"summary" json:"summary"`
	Description     string         `db:"description" json:"description,omitempty"`
	ImageCover      string         `db:"image_cover" json:"imageCover"`
	Images          pq.StringArray `db:"images" json:"images"`
	StartDates      Dates          `db:"start_dates" json:"startDates"`
	SecretTour      bool           `db:"secret_tour" json:"secretTour,omitempty"`
	StartLocation   Point          `db:"start_location" json:"startLocation"`
	Locations       Points         `db:"locations" json:"locations"`
	Guides          RefList[User]  `db:"guides" json:"guides"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt,omitzero"`

	// Reviews is filled only when the "reviews" relation is populated.
	Reviews []Review `db:"-" json:"reviews,omitzero"`
}

// TableName returns the name of the database table
// associated with the Tour model.
func (t Tour) TableName() string {
	return "tours"
}

func (t *Tour) GetID() string { return t.ID }
func (t *Tour) SetID(id string) { t.ID = id }

// DurationWeeks is the tour duration expressed in weeks.
func (t Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds the derived durationWeeks field.
func (t Tour) MarshalJSON() ([]byte, error) {
	type plain Tour
	return json.Marshal(struct {
		plain
		DurationWeeks float64 `json:"durationWeeks"`
	}{plain: plain(t), DurationWeeks: t.DurationWeeks()})
}

// TourStats is one row of the tour statistics aggregation.
type TourStats struct {
	Difficulty string  `db:"difficulty" json:"difficulty"`
	NumTours   int     `db:"num_tours" json:"numTours"`
	NumRatings int     `db:"num_ratings" json:"numRatings"`
	AvgRating  float64 `db:"avg_rating" json:"avgRating"`
	AvgPrice   float64 `db:"avg_price" json:"avgPrice"`
	MinPrice   float64 `db:"min_price" json:"minPrice"`
	MaxPrice   float64 `db:"max_price" json:"maxPrice"`
}

// MonthlyPlan is one month of the yearly tour start plan.
type MonthlyPlan struct {
	Month         int            `db:"month" json:"month"`
	NumTourStarts int            `db:"num_tour_starts" json:"numTourStarts"`
	Tours         pq.StringArray `db:"tours" json:"tours"`
}

// TourDistance is the distance from a reference point to a tour start.
type TourDistance struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Distance float64 `db:"distance" json:"distance"`
}
