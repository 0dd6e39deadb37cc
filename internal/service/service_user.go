// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// selfServiceFields are the profile fields a user may change on their own
// account.
var selfServiceFields = []string{validators.FieldName, validators.FieldEmail, validators.FieldPhoto}

type userService struct {
	*Resource[models.User, *models.User]

	users   store.UserRepository
	reviews store.ReviewRepository
	ratings *ratings
}

// NewUserService constructs a [UserService] on top of the user resource.
func NewUserService(resource *Resource[models.User, *models.User], users store.UserRepository, reviews store.ReviewRepository, tours store.TourRepository) UserService {
	return &userService{
		Resource: resource,
		users:    users,
		reviews:  reviews,
		ratings:  &ratings{tours: tours},
	}
}

// UpdateMe applies a profile patch. Password fields are refused and any
// other field is dropped.
func (s *userService) UpdateMe(ctx context.Context, userID string, patch []byte) (*models.User, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(patch, &raw); err != nil || raw == nil {
		return nil, newError(ErrInvalidDataProvided, "Request body must be a JSON object")
	}

	if _, ok := raw[validators.FieldPassword]; ok {
		return nil, newError(ErrInvalidDataProvided, "This route is not for password updates. Please use /updateMyPassword.")
	}
	if _, ok := raw[validators.FieldPasswordConfirm]; ok {
		return nil, newError(ErrInvalidDataProvided, "This route is not for password updates. Please use /updateMyPassword.")
	}

	filtered := make(map[string]json.RawMessage, len(selfServiceFields))
	for _, f := range selfServiceFields {
		if v, ok := raw[f]; ok {
			filtered[f] = v
		}
	}

	body, err := json.Marshal(filtered)
	if err != nil {
		return nil, fmt.Errorf("error encoding profile patch: %w", err)
	}

	return s.Update(ctx, userID, body)
}

// DeleteMe deactivates the account. Deactivated users disappear from every
// default read.
func (s *userService) DeleteMe(ctx context.Context, userID string) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("user deactivated")
	return nil
}

// Delete removes the account for good. Its reviews go with it, so the
// ratings of the reviewed tours are recomputed afterwards.
func (s *userService) Delete(ctx context.Context, id string, opts ...ReadOption) error {
	tourIDs, err := s.reviews.TourIDsByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("error listing reviewed tours: %w", err)
	}

	if err = s.Resource.Delete(ctx, id, opts...); err != nil {
		return err
	}

	return s.ratings.recalculate(ctx, tourIDs...)
}
