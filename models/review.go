// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Review is a user's rating of a tour. A user reviews a tour at most once.
type Review struct {
	ID        string    `db:"id" json:"id"`
	Review    string    `db:"review" json:"review"`
	Rating    float64   `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"createdAt,omitzero"`
	Tour      Ref[Tour] `db:"tour_id" json:"tour"`
	User      Ref[User] `db:"user_id" json:"user"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

func (r *Review) GetID() string { return r.ID }
func (r *Review) SetID(id string) { r.ID = id }

// OwnerID returns the id of the user who wrote the review.
func (r *Review) OwnerID() string { return r.User.ID }

// RatingsSummary is the aggregate of all reviews of one tour.
type RatingsSummary struct {
	TourID          string  `db:"tour_id" json:"tour"`
	RatingsAverage  float64 `db:"ratings_average" json:"ratingsAverage"`
	RatingsQuantity int     `db:"ratings_quantity" json:"ratingsQuantity"`
}
