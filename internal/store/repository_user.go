// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// Generic CRUD comes from the embedded [Repository]; lookups used by the
// authentication flows are added on top.
type userRepository struct {
	*Repository[models.User, *models.User]
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, log *logger.Logger) UserRepository {
	return &userRepository{
		Repository: NewRepository[models.User](db, UserSchema, log),
		db:         db,
		logger:     log,
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, Where(sq.Eq{"email": email}))
}

func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return r.FindOne(ctx,
		Where(sq.Eq{"password_reset_token": tokenHash}),
		Where(sq.Gt{"password_reset_expires": now}),
	)
}

func (r *userRepository) SetPasswordReset(ctx context.Context, id string, tokenHash *string, expires *time.Time) error {
	return r.UpdateFields(ctx, id, map[string]any{
		"password_reset_token":   tokenHash,
		"password_reset_expires": expires,
	})
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	return r.UpdateFields(ctx, id, map[string]any{"active": false})
}

func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, clearExpiredResetTokens, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredResetTokens").Msg("error clearing reset tokens")
		return 0, classify(usersTable, err)
	}

	cleared, err := res.RowsAffected()
	if err != nil {
		return 0, classify(usersTable, err)
	}

	return cleared, nil
}
