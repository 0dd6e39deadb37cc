// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tells [Apply] how to convert a raw filter value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBool
	KindTime
)

// Field maps a public (JSON) field name to its column.
type Field struct {
	Column string
	Kind   Kind
}

// Fields is the allow-list of queryable fields of a resource, keyed by the
// public name used in query strings.
type Fields map[string]Field

// Has reports whether name is a known field.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f Fields) lookup(name string) (Field, error) {
	field, ok := f[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: unknown field %q", ErrInvalidQuery, name)
	}
	return field, nil
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

// convert parses raw according to the field kind.
func (f Field) convert(name, raw string) (any, error) {
	switch f.Kind {
	case KindNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidQuery, name, raw)
		}
		return v, nil
	case KindInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidQuery, name, raw)
		}
		return v, nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a boolean, got %q", ErrInvalidQuery, name, raw)
		}
		return v, nil
	case KindTime:
		for _, layout := range timeLayouts {
			if v, err := time.Parse(layout, raw); err == nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%w: %s expects a date, got %q", ErrInvalidQuery, name, raw)
	default:
		return raw, nil
	}
}
