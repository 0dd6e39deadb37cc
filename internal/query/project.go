// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"fmt"
)

// Project encodes v and keeps only the selected top-level keys of every
// encoded object. "id" is always kept. With no fields v is returned
// unchanged.
func Project(v any, fields []string) (any, error) {
	if len(fields) == 0 {
		return v, nil
	}

	keep := make(map[string]struct{}, len(fields)+1)
	keep[fieldID] = struct{}{}
	for _, f := range fields {
		keep[f] = struct{}{}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding value for projection: %w", err)
	}

	var decoded any
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("error decoding value for projection: %w", err)
	}

	switch value := decoded.(type) {
	case []any:
		for i, item := range value {
			value[i] = projectObject(item, keep)
		}
		return value, nil
	default:
		return projectObject(value, keep), nil
	}
}

func projectObject(v any, keep map[string]struct{}) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}

	for key := range obj {
		if _, ok := keep[key]; !ok {
			delete(obj, key)
		}
	}
	return obj
}
