// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import "math"

// Op is a comparison operator of a filter condition.
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

func (o Op) valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		return true
	}
	return false
}

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// Reserved query keys that never become filter conditions.
const (
	KeyPage   = "page"
	KeySort   = "sort"
	KeyLimit  = "limit"
	KeyFields = "fields"
)

// Condition is a single "field op value" filter. Value is kept as the raw
// string until [Apply] converts it using the field kind.
type Condition struct {
	Field string
	Op    Op
	Value string
}

// SortField orders results by Field, descending when Desc is set.
type SortField struct {
	Field string
	Desc  bool
}

// Spec is the parsed form of a list request.
type Spec struct {
	Filters []Condition
	Sort    []SortField
	Fields  []string
	Page    int
	Limit   int
}

// Offset returns the number of rows skipped for the current page. Pages
// past the representable range are clamped to math.MaxInt, which still
// selects nothing.
func (s Spec) Offset() int {
	page := s.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := s.limit()
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func (s Spec) limit() int {
	if s.Limit < 1 {
		return DefaultLimit
	}
	return s.Limit
}

// Where appends an equality condition. Handlers use it to scope nested
// routes, e.g. reviews of one tour.
func (s Spec) Where(field string, op Op, value string) Spec {
	filters := make([]Condition, 0, len(s.Filters)+1)
	filters = append(filters, s.Filters...)
	s.Filters = append(filters, Condition{Field: field, Op: op, Value: value})
	return s
}
