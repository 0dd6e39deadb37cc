// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when no row matches the requested id or
	// condition within the active scope.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned when an identifier is not a valid uuid.
	ErrInvalidID = errors.New("invalid id")

	// ErrAlreadyExists is returned on unique constraint violations such as a
	// duplicate email, tour name or a second review of a tour by one user.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidReference is returned when a foreign key points to a row that
	// does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrConstraintViolation is returned when the database rejects a value
	// (check constraint, not null, malformed uuid).
	ErrConstraintViolation = errors.New("value violates a database constraint")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails for an unclassified reason.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning column values into a
	// destination struct fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
