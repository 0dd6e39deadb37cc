// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// Ref references another entity by id. When the referenced entity has been
// populated, Doc holds it and the reference is serialized as the full
// document; otherwise it is serialized as the bare id.
type Ref[T any] struct {
	ID  string
	Doc *T
}

// NewRef returns an unpopulated reference to id.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// IsZero reports whether the reference points nowhere.
func (r Ref[T]) IsZero() bool {
	return r.ID == ""
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts either an id string or an object carrying an "id".
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}

	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*r = Ref[T]{ID: id}
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("reference must be an id or an object with an id: %w", err)
	}
	*r = Ref[T]{ID: obj.ID}
	return nil
}

// Value implements driver.Valuer.
func (r Ref[T]) Value() (driver.Value, error) {
	if r.ID == "" {
		return nil, nil
	}
	return r.ID, nil
}

// Scan implements sql.Scanner.
func (r *Ref[T]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = Ref[T]{}
	case string:
		*r = Ref[T]{ID: v}
	case []byte:
		*r = Ref[T]{ID: string(v)}
	default:
		return fmt.Errorf("cannot scan %T into a reference", src)
	}
	return nil
}

// RefList is an ordered list of references stored as a uuid[] column.
type RefList[T any] []Ref[T]

// IDs returns the referenced ids in order.
func (l RefList[T]) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, r := range l {
		ids = append(ids, r.ID)
	}
	return ids
}

// Value implements driver.Valuer.
func (l RefList[T]) Value() (driver.Value, error) {
	return pq.StringArray(l.IDs()).Value()
}

// Scan implements sql.Scanner.
func (l *RefList[T]) Scan(src any) error {
	var ids pq.StringArray
	if err := ids.Scan(src); err != nil {
		return err
	}

	list := make(RefList[T], 0, len(ids))
	for _, id := range ids {
		list = append(list, Ref[T]{ID: id})
	}
	*l = list
	return nil
}
