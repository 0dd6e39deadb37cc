// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/models"
	sq "github.com/Masterminds/squirrel"
)

// Relation names accepted by [Populate].
const (
	RelationGuides   = "guides"
	RelationReviews  = "reviews"
	RelationUser     = "user"
	RelationTour     = "tour"
	RelationComments = "comments"
)

const (
	usersTable    = "users"
	toursTable    = "tours"
	reviewsTable  = "reviews"
	postsTable    = "posts"
	commentsTable = "comments"
)

var (
	activeUsers = sq.Eq{"active": true}
	publicTours = sq.Eq{"secret_tour": false}

	reviewColumns  = []string{"id", "review", "rating", "created_at", "tour_id", "user_id"}
	commentColumns = []string{"id", "text", "post_id", "user_id", "created_at"}
)

// UserSchema maps [models.User] onto the users table. Soft-deleted users are
// outside the default scope.
var UserSchema = Schema[models.User]{
	Table: usersTable,
	Columns: []string{
		"id", "name", "email", "photo", "role", "password", "password_changed_at",
		"password_reset_token", "password_reset_expires", "active", "created_at",
	},
	Insert: []string{"name", "email", "photo", "role", "password", "password_changed_at", "active"},
	Update: []string{
		"name", "email", "photo", "role", "password", "password_changed_at",
		"password_reset_token", "password_reset_expires", "active",
	},
	Fields: query.Fields{
		"id":                {Column: "id"},
		"name":              {Column: "name"},
		"email":             {Column: "email"},
		"photo":             {Column: "photo"},
		"role":              {Column: "role"},
		"passwordChangedAt": {Column: "password_changed_at", Kind: query.KindTime},
		"createdAt":         {Column: "created_at", Kind: query.KindTime},
	},
	Scope: activeUsers,
}

var tourColumns = []string{
	"id", "name", "slug", "duration", "max_group_size", "difficulty", "ratings_average",
	"ratings_quantity", "price", "price_discount", "summary", "description", "image_cover",
	"images", "start_dates", "secret_tour", "start_location", "locations", "guides", "created_at",
}

var tourWritable = []string{
	"name", "slug", "duration", "max_group_size", "difficulty", "ratings_average",
	"ratings_quantity", "price", "price_discount", "summary", "description", "image_cover",
	"images", "start_dates", "secret_tour", "start_location", "locations", "guides",
}

// TourSchema maps [models.Tour] onto the tours table. Secret tours are
// outside the default scope and guides are always populated.
var TourSchema = Schema[models.Tour]{
	Table:   toursTable,
	Columns: tourColumns,
	Insert:  tourWritable,
	Update:  tourWritable,
	Fields: query.Fields{
		"id":              {Column: "id"},
		"name":            {Column: "name"},
		"slug":            {Column: "slug"},
		"duration":        {Column: "duration", Kind: query.KindInteger},
		"maxGroupSize":    {Column: "max_group_size", Kind: query.KindInteger},
		"difficulty":      {Column: "difficulty"},
		"ratingsAverage":  {Column: "ratings_average", Kind: query.KindNumber},
		"ratingsQuantity": {Column: "ratings_quantity", Kind: query.KindInteger},
		"price":           {Column: "price", Kind: query.KindNumber},
		"priceDiscount":   {Column: "price_discount", Kind: query.KindNumber},
		"summary":         {Column: "summary"},
		"description":     {Column: "description"},
		"imageCover":      {Column: "image_cover"},
		"images":          {Column: "images"},
		"startDates":      {Column: "start_dates"},
		"startLocation":   {Column: "start_location"},
		"locations":       {Column: "locations"},
		"guides":          {Column: "guides"},
		"secretTour":      {Column: "secret_tour", Kind: query.KindBool},
		"createdAt":       {Column: "created_at", Kind: query.KindTime},
		"durationWeeks":   {Column: "(duration / 7.0)", Kind: query.KindNumber},
	},
	Scope: publicTours,
	Relations: map[string]Relation[models.Tour]{
		RelationGuides:  populateGuides,
		RelationReviews: populateTourReviews,
	},
	AlwaysPopulate: []string{RelationGuides},
}

// ReviewSchema maps [models.Review] onto the reviews table. The author is
// always populated with name and photo.
var ReviewSchema = Schema[models.Review]{
	Table:   reviewsTable,
	Columns: reviewColumns,
	Insert:  []string{"review", "rating", "tour_id", "user_id"},
	Update:  []string{"review", "rating", "tour_id", "user_id"},
	Fields: query.Fields{
		"id":        {Column: "id"},
		"review":    {Column: "review"},
		"rating":    {Column: "rating", Kind: query.KindNumber},
		"tour":      {Column: "tour_id"},
		"user":      {Column: "user_id"},
		"createdAt": {Column: "created_at", Kind: query.KindTime},
	},
	Relations: map[string]Relation[models.Review]{
		RelationUser: populateReviewUsers,
		RelationTour: populateReviewTours,
	},
	AlwaysPopulate: []string{RelationUser},
}

// PostSchema maps [models.Post] onto the posts table.
var PostSchema = Schema[models.Post]{
	Table:   postsTable,
	Columns: []string{"id", "title", "content", "user_id", "created_at"},
	Insert:  []string{"title", "content", "user_id"},
	Update:  []string{"title", "content"},
	Fields: query.Fields{
		"id":        {Column: "id"},
		"title":     {Column: "title"},
		"content":   {Column: "content"},
		"user":      {Column: "user_id"},
		"createdAt": {Column: "created_at", Kind: query.KindTime},
	},
	Relations: map[string]Relation[models.Post]{
		RelationUser:     populatePostUsers,
		RelationComments: populatePostComments,
	},
	AlwaysPopulate: []string{RelationUser},
}

// CommentSchema maps [models.Comment] onto the comments table.
var CommentSchema = Schema[models.Comment]{
	Table:   commentsTable,
	Columns: commentColumns,
	Insert:  []string{"text", "post_id", "user_id"},
	Update:  []string{"text"},
	Fields: query.Fields{
		"id":        {Column: "id"},
		"text":      {Column: "text"},
		"post":      {Column: "post_id"},
		"user":      {Column: "user_id"},
		"createdAt": {Column: "created_at", Kind: query.KindTime},
	},
	Relations: map[string]Relation[models.Comment]{
		RelationUser: populateCommentUsers,
	},
	AlwaysPopulate: []string{RelationUser},
}
