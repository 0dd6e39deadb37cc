// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
)

// classify maps driver errors to the sentinel errors of this package. The
// returned error keeps the original one in its chain.
//
//   - sql.ErrNoRows                     → [ErrNotFound]
//   - 23505 unique_violation            → [ErrAlreadyExists]
//   - 23503 foreign_key_violation       → [ErrInvalidReference]
//   - 23514 check_violation, 22P02, 23502 → [ErrConstraintViolation]
//   - anything else                     → [ErrExecutingQuery]
func classify(table string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, ErrNotFound)
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%s (%s): %w: %w", table, postgresConstraint(err), ErrAlreadyExists, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%s (%s): %w: %w", table, postgresConstraint(err), ErrInvalidReference, err)
	case pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.InvalidTextRepresentation,
		pgerrcode.NumericValueOutOfRange:
		return fmt.Errorf("%s (%s): %w: %w", table, postgresConstraint(err), ErrConstraintViolation, err)
	}

	return fmt.Errorf("%s: %w: %w", table, ErrExecutingQuery, err)
}
