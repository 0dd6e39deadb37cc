// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Parse builds a [Spec] from URL query values.
//
// Keys other than page, sort, limit and fields become filter conditions:
// "field=value" is an equality test and "field[op]=value" uses one of
// eq, ne, gt, gte, lt, lte. Sort and fields are comma separated lists with
// surrounding whitespace ignored; a leading "-" sorts descending.
//
// Parse only checks syntax. Field names are checked by [Apply].
func Parse(values url.Values) (Spec, error) {
	spec := Spec{Page: DefaultPage, Limit: DefaultLimit}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		switch key {
		case KeyPage:
			page, err := parsePositive(key, values.Get(key))
			if err != nil {
				return Spec{}, err
			}
			spec.Page = page
		case KeyLimit:
			limit, err := parsePositive(key, values.Get(key))
			if err != nil {
				return Spec{}, err
			}
			spec.Limit = limit
		case KeySort:
			sort, err := parseSort(values[key])
			if err != nil {
				return Spec{}, err
			}
			spec.Sort = sort
		case KeyFields:
			spec.Fields = splitList(values[key])
		default:
			field, op, err := parseKey(key)
			if err != nil {
				return Spec{}, err
			}
			for _, v := range values[key] {
				spec.Filters = append(spec.Filters, Condition{Field: field, Op: op, Value: strings.TrimSpace(v)})
			}
		}
	}

	return spec, nil
}

func parsePositive(key, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidQuery, key, raw)
	}
	return n, nil
}

// parseKey splits "price[gte]" into ("price", OpGte).
func parseKey(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if strings.ContainsRune(key, ']') {
			return "", "", fmt.Errorf("%w: malformed key %q", ErrInvalidQuery, key)
		}
		return strings.TrimSpace(key), OpEq, nil
	}

	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fmt.Errorf("%w: malformed key %q", ErrInvalidQuery, key)
	}

	field := strings.TrimSpace(key[:open])
	op := Op(key[open+1 : len(key)-1])
	if !op.valid() {
		return "", "", fmt.Errorf("%w: unsupported operator %q on %q", ErrInvalidQuery, op, field)
	}

	return field, op, nil
}

func parseSort(raw []string) ([]SortField, error) {
	var sort []SortField
	for _, item := range splitList(raw) {
		desc := strings.HasPrefix(item, "-")
		name := strings.TrimSpace(strings.TrimLeft(item, "+-"))
		if name == "" {
			return nil, fmt.Errorf("%w: empty sort field", ErrInvalidQuery)
		}
		sort = append(sort, SortField{Field: name, Desc: desc})
	}
	return sort, nil
}

// splitList joins repeated parameters and splits them on commas, dropping
// empty items.
func splitList(raw []string) []string {
	var items []string
	for _, value := range raw {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
