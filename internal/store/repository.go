// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/utils"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/reflectx"
)

// Entity is implemented by pointers to every stored model.
type Entity[T any] interface {
	*T
	TableName() string
	GetID() string
	SetID(id string)
}

// Relation loads a named related entity into already fetched records.
type Relation[T any] func(ctx context.Context, db *DB, records []T) error

// Schema describes how a model maps onto its table.
type Schema[T any] struct {
	// Table is the table name.
	Table string

	// Columns are selected by every read and returned by writes.
	Columns []string

	// Insert lists the columns written by Create. "id" is always written.
	Insert []string

	// Update lists the columns written by Update.
	Update []string

	// Fields is the allow-list of public field names usable in query strings.
	Fields query.Fields

	// Scope restricts every statement unless [Unscoped] is passed, e.g.
	// "active = true" for users.
	Scope sq.Sqlizer

	// Relations are loaded on demand by name with [Populate].
	Relations map[string]Relation[T]

	// AlwaysPopulate lists relations loaded by every read.
	AlwaysPopulate []string
}

type findOptions struct {
	unscoped   bool
	populate   []string
	noPopulate bool
	where      []sq.Sqlizer
}

// FindOption tunes a single repository call.
type FindOption func(*findOptions)

// Unscoped disables the default scope of the schema.
func Unscoped() FindOption {
	return func(o *findOptions) { o.unscoped = true }
}

// Populate loads the named relations into the result.
func Populate(relations ...string) FindOption {
	return func(o *findOptions) { o.populate = append(o.populate, relations...) }
}

// WithoutPopulate returns records as stored, skipping every relation
// including the schema's AlwaysPopulate list. Records read for a write must
// use it so read-time filtering of relations is never written back.
func WithoutPopulate() FindOption {
	return func(o *findOptions) { o.noPopulate = true }
}

// Where adds an extra condition to the statement.
func Where(cond sq.Sqlizer) FindOption {
	return func(o *findOptions) { o.where = append(o.where, cond) }
}

func newFindOptions(opts []FindOption) findOptions {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Repository implements generic CRUD over one table described by a [Schema].
type Repository[T any, P Entity[T]] struct {
	db     *DB
	schema Schema[T]
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewRepository constructs a [Repository] for schema.
func NewRepository[T any, P Entity[T]](db *DB, schema Schema[T], log *logger.Logger) *Repository[T, P] {
	log.Debug().Str("table", schema.Table).Msg("creating repository")
	return &Repository[T, P]{
		db:     db,
		schema: schema,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}
}

// Fields returns the queryable fields of the resource.
func (r *Repository[T, P]) Fields() query.Fields {
	return r.schema.Fields
}

func (r *Repository[T, P]) scoped(b sq.SelectBuilder, o findOptions) sq.SelectBuilder {
	if r.schema.Scope != nil && !o.unscoped {
		b = b.Where(r.schema.Scope)
	}
	for _, cond := range o.where {
		b = b.Where(cond)
	}
	return b
}

func (r *Repository[T, P]) scopeCond(o findOptions) sq.And {
	conds := sq.And{}
	if r.schema.Scope != nil && !o.unscoped {
		conds = append(conds, r.schema.Scope)
	}
	return append(conds, o.where...)
}

func (r *Repository[T, P]) selectBuilder() sq.SelectBuilder {
	return psql.Select(r.schema.Columns...).From(r.schema.Table)
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// values returns the field values of rec for the given db columns. Nested
// pointers are left untouched so unpopulated references stay nil.
func (r *Repository[T, P]) values(rec P, columns []string) ([]any, error) {
	v := reflect.Indirect(reflect.ValueOf(rec))
	traversals := r.db.Mapper.TraversalsByName(v.Type(), columns)

	values := make([]any, 0, len(columns))
	for i, column := range columns {
		if len(traversals[i]) == 0 {
			return nil, fmt.Errorf("%w: %s has no column %q", ErrBuildingSQLQuery, r.schema.Table, column)
		}
		values = append(values, reflectx.FieldByIndexesReadOnly(v, traversals[i]).Interface())
	}
	return values, nil
}

// Create inserts rec and reloads it from the RETURNING clause so defaults
// assigned by the database (created_at, ...) are visible to the caller.
func (r *Repository[T, P]) Create(ctx context.Context, rec P) error {
	log := logger.FromContext(ctx)

	if rec.GetID() == "" {
		rec.SetID(r.ids.Generate())
	}

	columns := append([]string{"id"}, r.schema.Insert...)
	values, err := r.values(rec, columns)
	if err != nil {
		return err
	}

	stmt, args, err := psql.Insert(r.schema.Table).
		Columns(columns...).
		Values(values...).
		Suffix(returning(r.schema.Columns)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Repository.Create").Str("table", r.schema.Table).Msg("error building insert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowxContext(ctx, stmt, args...).StructScan(rec); err != nil {
		log.Err(err).Str("func", "*Repository.Create").Str("table", r.schema.Table).Msg("error inserting record")
		return classify(r.schema.Table, err)
	}

	return nil
}

// FindByID returns the record with the given id within the default scope.
func (r *Repository[T, P]) FindByID(ctx context.Context, id string, opts ...FindOption) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s %q: %w", r.schema.Table, id, ErrInvalidID)
	}

	return r.FindOne(ctx, append(opts, Where(sq.Eq{"id": id}))...)
}

// FindOne returns the first record matching the options.
func (r *Repository[T, P]) FindOne(ctx context.Context, opts ...FindOption) (*T, error) {
	log := logger.FromContext(ctx)
	o := newFindOptions(opts)

	stmt, args, err := r.scoped(r.selectBuilder(), o).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rec T
	if err = r.db.GetContext(ctx, &rec, stmt, args...); err != nil {
		log.Debug().Err(err).Str("func", "*Repository.FindOne").Str("table", r.schema.Table).Msg("record lookup failed")
		return nil, classify(r.schema.Table, err)
	}

	records := []T{rec}
	if err = r.populate(ctx, records, o); err != nil {
		return nil, err
	}

	return &records[0], nil
}

// Find returns the records selected by spec. Filtering, sorting and paging
// follow [query.Apply].
func (r *Repository[T, P]) Find(ctx context.Context, spec query.Spec, opts ...FindOption) ([]T, error) {
	log := logger.FromContext(ctx)
	o := newFindOptions(opts)

	b, err := query.Apply(r.scoped(r.selectBuilder(), o), spec, r.schema.Fields)
	if err != nil {
		return nil, err
	}

	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	records := make([]T, 0)
	if err = r.db.SelectContext(ctx, &records, stmt, args...); err != nil {
		log.Err(err).Str("func", "*Repository.Find").Str("table", r.schema.Table).Msg("error selecting records")
		return nil, classify(r.schema.Table, err)
	}

	if err = r.populate(ctx, records, o); err != nil {
		return nil, err
	}

	return records, nil
}

// Count returns the number of records matching the filters of spec.
func (r *Repository[T, P]) Count(ctx context.Context, spec query.Spec, opts ...FindOption) (int, error) {
	o := newFindOptions(opts)

	b, err := query.Where(r.scoped(psql.Select("COUNT(*)").From(r.schema.Table), o), spec, r.schema.Fields)
	if err != nil {
		return 0, err
	}

	stmt, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.GetContext(ctx, &count, stmt, args...); err != nil {
		return 0, classify(r.schema.Table, err)
	}

	return count, nil
}

// Update writes the updatable columns of rec and reloads it.
func (r *Repository[T, P]) Update(ctx context.Context, rec P, opts ...FindOption) error {
	log := logger.FromContext(ctx)

	values, err := r.values(rec, r.schema.Update)
	if err != nil {
		return err
	}

	set := make(map[string]any, len(values))
	for i, column := range r.schema.Update {
		set[column] = values[i]
	}

	return r.update(ctx, log, rec.GetID(), set, (*T)(rec), newFindOptions(opts))
}

// UpdateFields writes only the given columns of one record, bypassing the
// model. It is used for bookkeeping writes such as reset tokens or soft
// deletion.
func (r *Repository[T, P]) UpdateFields(ctx context.Context, id string, set map[string]any, opts ...FindOption) error {
	log := logger.FromContext(ctx)

	var rec T
	return r.update(ctx, log, id, set, &rec, newFindOptions(opts))
}

func (r *Repository[T, P]) update(ctx context.Context, log *logger.Logger, id string, set map[string]any, dst *T, o findOptions) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", r.schema.Table, id, ErrInvalidID)
	}

	b := psql.Update(r.schema.Table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning(r.schema.Columns))
	if scope := r.scopeCond(o); len(scope) > 0 {
		b = b.Where(scope)
	}

	stmt, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Repository.update").Str("table", r.schema.Table).Msg("error building update")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowxContext(ctx, stmt, args...).StructScan(dst); err != nil {
		log.Err(err).Str("func", "*Repository.update").Str("table", r.schema.Table).Msg("error updating record")
		return classify(r.schema.Table, err)
	}

	return nil
}

// Delete removes the record with the given id.
func (r *Repository[T, P]) Delete(ctx context.Context, id string, opts ...FindOption) error {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", r.schema.Table, id, ErrInvalidID)
	}

	b := psql.Delete(r.schema.Table).Where(sq.Eq{"id": id})
	if scope := r.scopeCond(newFindOptions(opts)); len(scope) > 0 {
		b = b.Where(scope)
	}

	stmt, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "*Repository.Delete").Str("table", r.schema.Table).Msg("error deleting record")
		return classify(r.schema.Table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return classify(r.schema.Table, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %q: %w", r.schema.Table, id, ErrNotFound)
	}

	return nil
}

func (r *Repository[T, P]) populate(ctx context.Context, records []T, o findOptions) error {
	if len(records) == 0 || o.noPopulate {
		return nil
	}

	names := append(append([]string{}, r.schema.AlwaysPopulate...), o.populate...)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		relation, ok := r.schema.Relations[name]
		if !ok {
			return fmt.Errorf("%w: %s has no relation %q", query.ErrInvalidQuery, r.schema.Table, name)
		}
		if err := relation(ctx, r.db, records); err != nil {
			return fmt.Errorf("error populating %s.%s: %w", r.schema.Table, name, err)
		}
	}

	return nil
}
