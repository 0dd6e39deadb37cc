// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/models"
)

// Storages groups every repository backed by one database.
type Storages struct {
	UserRepository    UserRepository
	TourRepository    TourRepository
	ReviewRepository  ReviewRepository
	PostRepository    PostRepository
	CommentRepository CommentRepository
}

// NewStorages wires all repositories onto db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		TourRepository:    NewTourRepository(db, log),
		ReviewRepository:  NewReviewRepository(db, log),
		PostRepository:    NewRepository[models.Post](db, PostSchema, log),
		CommentRepository: NewRepository[models.Comment](db, CommentSchema, log),
	}
}
