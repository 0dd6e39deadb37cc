// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-natours/internal/crypto"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// Step names of the user write pipeline.
const (
	StepApplyDefaults          = "apply-defaults"
	StepNormalizeEmail         = "normalize-email"
	StepValidate               = "validate"
	StepHashPassword           = "hash-password"
	StepStampPasswordChangedAt = "stamp-password-changed-at"
)

var profileFields = []string{validators.FieldName, validators.FieldEmail, validators.FieldRole, validators.FieldPhoto}

// passwordChangeSkew is subtracted from the password change stamp so that a
// token issued right after the change is still newer than it.
const passwordChangeSkew = time.Second

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userPipeline prepares users for storage. The plaintext password and its
// confirmation never leave the pipeline: once hashed the confirmation is
// dropped.
func userPipeline(v validators.Validator, hasher crypto.PasswordHasher, now func() time.Time) Pipeline[models.User] {
	return Pipeline[models.User]{
		{
			Name: StepApplyDefaults,
			Run: func(_ context.Context, w *Write[models.User]) error {
				if !w.IsNew() {
					return nil
				}
				u := w.Record
				if u.Role == "" {
					u.Role = models.RoleUser
				}
				if u.Photo == "" {
					u.Photo = models.DefaultPhoto
				}
				u.Active = true
				return nil
			},
		},
		{
			Name: StepNormalizeEmail,
			Run: func(_ context.Context, w *Write[models.User]) error {
				if w.Touched(validators.FieldEmail) {
					w.Record.Email = normalizeEmail(w.Record.Email)
				}
				return nil
			},
		},
		validate(v, func(w *Write[models.User]) []string {
			fields := append([]string{}, profileFields...)
			if w.Touched(validators.FieldPassword, validators.FieldPasswordConfirm) {
				fields = append(fields, validators.FieldPassword, validators.FieldPasswordConfirm)
			}
			return fields
		}),
		{
			Name: StepHashPassword,
			Run: func(_ context.Context, w *Write[models.User]) error {
				if !w.Touched(validators.FieldPassword) {
					return nil
				}
				hash, err := hasher.Hash(w.Record.Password)
				if errors.Is(err, crypto.ErrPasswordTooLong) {
					return wrapError(ErrInvalidDataProvided, err,
						fmt.Sprintf("Password must have at most %d bytes", validators.PasswordMaxBytes))
				}
				if err != nil {
					return fmt.Errorf("error hashing password: %w", err)
				}
				w.Record.Password = hash
				w.Record.PasswordConfirm = ""
				return nil
			},
		},
		{
			Name: StepStampPasswordChangedAt,
			Run: func(_ context.Context, w *Write[models.User]) error {
				if w.IsNew() || !w.Changed[validators.FieldPassword] {
					return nil
				}
				changedAt := now().Add(-passwordChangeSkew)
				w.Record.PasswordChangedAt = &changedAt
				return nil
			},
		},
	}
}
