// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
	"github.com/lib/pq"
)

const (
	StepTrim        = "trim"
	StepSlug        = "slug"
	StepRoundRating = "round-rating"
)

// Slugify lower-cases s and joins its letter and digit runs with dashes:
// "The Forest Hiker" becomes "the-forest-hiker".
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func tourPipeline(v validators.Validator) Pipeline[models.Tour] {
	return Pipeline[models.Tour]{
		{
			Name: StepTrim,
			Run: func(_ context.Context, w *Write[models.Tour]) error {
				t := w.Record
				t.Name = strings.TrimSpace(t.Name)
				t.Summary = strings.TrimSpace(t.Summary)
				t.Description = strings.TrimSpace(t.Description)
				return nil
			},
		},
		{
			Name: StepApplyDefaults,
			Run: func(_ context.Context, w *Write[models.Tour]) error {
				t := w.Record
				if w.IsNew() && t.RatingsAverage == 0 {
					t.RatingsAverage = models.DefaultRatingsAverage
				}
				if t.Images == nil {
					t.Images = pq.StringArray{}
				}
				if t.StartDates == nil {
					t.StartDates = models.Dates{}
				}
				if t.Locations == nil {
					t.Locations = models.Points{}
				}
				if t.Guides == nil {
					t.Guides = models.RefList[models.User]{}
				}
				return nil
			},
		},
		{
			Name: StepSlug,
			Run: func(_ context.Context, w *Write[models.Tour]) error {
				if w.Touched(validators.FieldName) || w.Record.Slug == "" {
					w.Record.Slug = Slugify(w.Record.Name)
				}
				return nil
			},
		},
		validate[models.Tour](v, nil),
		{
			Name: StepRoundRating,
			Run: func(_ context.Context, w *Write[models.Tour]) error {
				w.Record.RatingsAverage = roundRating(w.Record.RatingsAverage)
				return nil
			},
		},
	}
}
