// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
)

// Write is the state of one record passing through a write pipeline.
type Write[T any] struct {
	// Record is the record about to be persisted. Steps mutate it in place.
	Record *T

	// Previous is the stored version of the record, nil on create.
	Previous *T

	// Changed holds the JSON names of the fields the caller set on update.
	Changed map[string]bool
}

// IsNew reports whether the record is being created.
func (w *Write[T]) IsNew() bool {
	return w.Previous == nil
}

// Touched reports whether any of the fields is written: on create every
// field is, on update only the changed ones.
func (w *Write[T]) Touched(fields ...string) bool {
	if w.IsNew() {
		return true
	}
	for _, f := range fields {
		if w.Changed[f] {
			return true
		}
	}
	return false
}

// Step is one named stage of a [Pipeline].
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context, w *Write[T]) error
}

// Pipeline runs its steps in order and stops at the first failing one.
type Pipeline[T any] []Step[T]

// Run executes the pipeline over w.
func (p Pipeline[T]) Run(ctx context.Context, w *Write[T]) error {
	for _, step := range p {
		if err := step.Run(ctx, w); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

// Names lists the step names in execution order.
func (p Pipeline[T]) Names() []string {
	names := make([]string, 0, len(p))
	for _, step := range p {
		names = append(names, step.Name)
	}
	return names
}
