// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// Hook runs after a record has been written.
type Hook[T any] func(ctx context.Context, w *Write[T]) error

// Resource implements [CRUDService] for one model on top of a generic
// repository. Writes run through the pipeline of the model.
type Resource[T any, P store.Entity[T]] struct {
	// name is used in logs and error messages, e.g. "tour".
	name string

	repo     store.CRUD[T]
	pipeline Pipeline[T]

	// afterSave runs after create and update, afterDelete after delete.
	afterSave   []Hook[T]
	afterDelete []func(ctx context.Context, rec *T) error

	// authorize guards update and delete of an existing record. Nil allows
	// everything the route lets through.
	authorize func(ctx context.Context, rec *T) error

	logger *logger.Logger
}

// NewResource constructs a [Resource] over repo with the given write
// pipeline.
func NewResource[T any, P store.Entity[T]](name string, repo store.CRUD[T], pipeline Pipeline[T], logger *logger.Logger) *Resource[T, P] {
	return &Resource[T, P]{
		name:     name,
		repo:     repo,
		pipeline: pipeline,
		logger:   logger,
	}
}

func (r *Resource[T, P]) Fields() query.Fields {
	return r.repo.Fields()
}

func (r *Resource[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	log := logger.FromContext(ctx)

	w := &Write[T]{Record: rec}
	if err := r.pipeline.Run(ctx, w); err != nil {
		log.Debug().Err(err).Str("resource", r.name).Msg("record rejected by write pipeline")
		return nil, fmt.Errorf("error creating %s: %w", r.name, err)
	}

	if err := r.repo.Create(ctx, rec); err != nil {
		log.Err(err).Str("func", "*Resource.Create").Str("resource", r.name).Msg("error storing record")
		return nil, fmt.Errorf("error creating %s: %w", r.name, err)
	}

	if err := r.runAfterSave(ctx, w); err != nil {
		return nil, err
	}

	return r.repo.FindByID(ctx, P(rec).GetID(), store.Unscoped())
}

func (r *Resource[T, P]) Get(ctx context.Context, id string, opts ...ReadOption) (*T, error) {
	rec, err := r.repo.FindByID(ctx, id, opts...)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", r.name, err)
	}
	return rec, nil
}

func (r *Resource[T, P]) List(ctx context.Context, spec query.Spec, opts ...ReadOption) ([]T, error) {
	records, err := r.repo.Find(ctx, spec, opts...)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", r.name, err)
	}
	return records, nil
}

func (r *Resource[T, P]) Update(ctx context.Context, id string, patch []byte, opts ...ReadOption) (*T, error) {
	existing, err := r.repo.FindByID(ctx, id, stored(opts)...)
	if err != nil {
		return nil, fmt.Errorf("error updating %s: %w", r.name, err)
	}
	if err = r.checkAccess(ctx, existing); err != nil {
		return nil, err
	}

	changed, err := patchKeys(patch)
	if err != nil {
		return nil, err
	}

	rec := new(T)
	*rec = *existing
	resetFields(rec, changed)
	if err = json.Unmarshal(patch, rec); err != nil {
		return nil, newError(ErrInvalidDataProvided, fmt.Sprintf("Invalid input data. %s", jsonMessage(err)))
	}
	P(rec).SetID(P(existing).GetID())

	return r.save(ctx, &Write[T]{Record: rec, Previous: existing, Changed: changed}, opts...)
}

// save persists an update prepared by the caller.
func (r *Resource[T, P]) save(ctx context.Context, w *Write[T], opts ...ReadOption) (*T, error) {
	log := logger.FromContext(ctx)

	if err := r.pipeline.Run(ctx, w); err != nil {
		log.Debug().Err(err).Str("resource", r.name).Msg("record rejected by write pipeline")
		return nil, fmt.Errorf("error updating %s: %w", r.name, err)
	}

	if err := r.repo.Update(ctx, w.Record, opts...); err != nil {
		log.Err(err).Str("func", "*Resource.save").Str("resource", r.name).Msg("error storing record")
		return nil, fmt.Errorf("error updating %s: %w", r.name, err)
	}

	if err := r.runAfterSave(ctx, w); err != nil {
		return nil, err
	}

	return r.repo.FindByID(ctx, P(w.Record).GetID(), append(opts, store.Unscoped())...)
}

func (r *Resource[T, P]) Delete(ctx context.Context, id string, opts ...ReadOption) error {
	log := logger.FromContext(ctx)

	existing, err := r.repo.FindByID(ctx, id, stored(opts)...)
	if err != nil {
		return fmt.Errorf("error deleting %s: %w", r.name, err)
	}
	if err = r.checkAccess(ctx, existing); err != nil {
		return err
	}

	if err = r.repo.Delete(ctx, id, opts...); err != nil {
		log.Err(err).Str("func", "*Resource.Delete").Str("resource", r.name).Msg("error deleting record")
		return fmt.Errorf("error deleting %s: %w", r.name, err)
	}

	for _, hook := range r.afterDelete {
		if err = hook(ctx, existing); err != nil {
			return fmt.Errorf("error after deleting %s: %w", r.name, err)
		}
	}

	return nil
}

// stored reads a record without relations, as it will be written back.
func stored(opts []ReadOption) []ReadOption {
	return append(append([]ReadOption{}, opts...), store.WithoutPopulate())
}

func (r *Resource[T, P]) checkAccess(ctx context.Context, rec *T) error {
	if r.authorize == nil {
		return nil
	}
	return r.authorize(ctx, rec)
}

func (r *Resource[T, P]) runAfterSave(ctx context.Context, w *Write[T]) error {
	for _, hook := range r.afterSave {
		if err := hook(ctx, w); err != nil {
			return fmt.Errorf("error after saving %s: %w", r.name, err)
		}
	}
	return nil
}

// patchKeys returns the top-level keys of a JSON object patch.
func patchKeys(patch []byte) (map[string]bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(patch, &raw); err != nil || raw == nil {
		return nil, newError(ErrInvalidDataProvided, "Request body must be a JSON object")
	}

	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

// resetFields zeroes the struct fields named by keys so that decoding the
// patch allocates fresh slices instead of writing into the stored ones.
func resetFields[T any](rec *T, keys map[string]bool) {
	v := reflect.ValueOf(rec).Elem()
	t := v.Type()

	lowered := make(map[string]bool, len(keys))
	for k := range keys {
		lowered[strings.ToLower(k)] = true
	}

	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "-" || !t.Field(i).IsExported() {
			continue
		}
		if name == "" {
			name = t.Field(i).Name
		}
		if lowered[strings.ToLower(name)] {
			v.Field(i).SetZero()
		}
	}
}

func jsonMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Invalid value for %s.", typeErr.Field)
	}
	return "Malformed JSON."
}

// owned is implemented by models that belong to a user.
type owned interface {
	OwnerID() string
}

// ownerOrAdmin allows the author of a record and admins.
func ownerOrAdmin[T any, P interface {
	*T
	owned
}](ctx context.Context, rec *T) error {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		return newError(ErrNotAuthenticated, "You are not logged in! Please log in to get access.")
	}
	if user.Role == models.RoleAdmin || P(rec).OwnerID() == user.ID {
		return nil
	}
	return newError(ErrForbidden, "You do not have permission to perform this action")
}

// setAuthor fills the author reference of new records with the current user
// and keeps the stored author on update. Admins may create records on
// behalf of another user; writes without a current user (seeding) keep the
// given author.
func setAuthor[T any](author func(*T) *models.Ref[models.User]) Step[T] {
	return Step[T]{
		Name: "set-author",
		Run: func(ctx context.Context, w *Write[T]) error {
			ref := author(w.Record)
			if !w.IsNew() {
				*ref = models.NewRef[models.User](author(w.Previous).ID)
				return nil
			}

			user, ok := utils.CurrentUser(ctx)
			if !ok {
				return nil
			}
			if ref.ID == "" || user.Role != models.RoleAdmin {
				*ref = models.NewRef[models.User](user.ID)
			}
			return nil
		},
	}
}

// validate runs the model validator over the listed fields, or every field
// when fields returns nil.
func validate[T any](v validators.Validator, fields func(w *Write[T]) []string) Step[T] {
	return Step[T]{
		Name: "validate",
		Run: func(ctx context.Context, w *Write[T]) error {
			var names []string
			if fields != nil {
				names = fields(w)
			}
			return v.Validate(ctx, w.Record, names...)
		},
	}
}
