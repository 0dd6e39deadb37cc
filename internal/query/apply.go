// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
)

// Where adds the filter conditions of spec to b.
func Where(b sq.SelectBuilder, spec Spec, fields Fields) (sq.SelectBuilder, error) {
	for _, cond := range spec.Filters {
		field, err := fields.lookup(cond.Field)
		if err != nil {
			return b, err
		}

		value, err := field.convert(cond.Field, cond.Value)
		if err != nil {
			return b, err
		}

		b = b.Where(predicate(field.Column, cond.Op, value))
	}

	return b, nil
}

func predicate(column string, op Op, value any) sq.Sqlizer {
	switch op {
	case OpNe:
		return sq.NotEq{column: value}
	case OpGt:
		return sq.Gt{column: value}
	case OpGte:
		return sq.GtOrEq{column: value}
	case OpLt:
		return sq.Lt{column: value}
	case OpLte:
		return sq.LtOrEq{column: value}
	default:
		return sq.Eq{column: value}
	}
}

// OrderBy adds ORDER BY clauses for spec.Sort. Without an explicit sort the
// newest records come first when the resource exposes createdAt. The id
// column is appended as a tie-breaker so pages are stable.
func OrderBy(b sq.SelectBuilder, spec Spec, fields Fields) (sq.SelectBuilder, error) {
	sort := spec.Sort
	if len(sort) == 0 && fields.Has(fieldCreatedAt) {
		sort = []SortField{{Field: fieldCreatedAt, Desc: true}}
	}

	sortedByID := false
	for _, s := range sort {
		field, err := fields.lookup(s.Field)
		if err != nil {
			return b, err
		}
		if s.Field == fieldID {
			sortedByID = true
		}

		direction := " ASC"
		if s.Desc {
			direction = " DESC"
		}
		b = b.OrderBy(field.Column + direction)
	}

	if id, ok := fields[fieldID]; ok && !sortedByID {
		b = b.OrderBy(id.Column + " ASC")
	}

	return b, nil
}

// Paginate adds LIMIT and OFFSET for the requested page.
func Paginate(b sq.SelectBuilder, spec Spec) sq.SelectBuilder {
	return b.Limit(uint64(spec.limit())).Offset(uint64(spec.Offset()))
}

// CheckFields verifies that every selected field is known.
func CheckFields(spec Spec, fields Fields) error {
	for _, name := range spec.Fields {
		if _, err := fields.lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// Apply adds filtering, ordering and pagination of spec to b. It fails with
// [ErrInvalidQuery] when the spec references unknown fields or values do not
// match their field kind.
func Apply(b sq.SelectBuilder, spec Spec, fields Fields) (sq.SelectBuilder, error) {
	if err := CheckFields(spec, fields); err != nil {
		return b, err
	}

	b, err := Where(b, spec, fields)
	if err != nil {
		return b, err
	}

	b, err = OrderBy(b, spec, fields)
	if err != nil {
		return b, err
	}

	return Paginate(b, spec), nil
}
