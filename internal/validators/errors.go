// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-natours/models"
)

var (
	// ErrValidation is matched by every [*Errors] through [errors.Is].
	ErrValidation = errors.New("invalid input data")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Errors collects every failed rule of one record.
type Errors struct {
	Fields []models.FieldError
}

// Add records a failed rule for field.
func (e *Errors) Add(field, message string) {
	e.Fields = append(e.Fields, models.FieldError{Field: field, Message: message})
}

// Err returns e when at least one rule failed and nil otherwise.
func (e *Errors) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error joins the messages as "Invalid input data. msg1. msg2".
func (e *Errors) Error() string {
	messages := make([]string, 0, len(e.Fields)+1)
	messages = append(messages, "Invalid input data")
	for _, f := range e.Fields {
		messages = append(messages, strings.TrimSuffix(f.Message, "."))
	}
	return strings.Join(messages, ". ")
}

func (e *Errors) Unwrap() error {
	return ErrValidation
}
