// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

func reviewPipeline(v validators.Validator) Pipeline[models.Review] {
	return Pipeline[models.Review]{
		setAuthor(func(r *models.Review) *models.Ref[models.User] { return &r.User }),
		{
			Name: StepTrim,
			Run: func(_ context.Context, w *Write[models.Review]) error {
				w.Record.Review = strings.TrimSpace(w.Record.Review)
				return nil
			},
		},
		validate[models.Review](v, nil),
	}
}

func postPipeline(v validators.Validator) Pipeline[models.Post] {
	return Pipeline[models.Post]{
		setAuthor(func(p *models.Post) *models.Ref[models.User] { return &p.User }),
		{
			Name: StepTrim,
			Run: func(_ context.Context, w *Write[models.Post]) error {
				w.Record.Title = strings.TrimSpace(w.Record.Title)
				return nil
			},
		},
		validate[models.Post](v, nil),
	}
}

func commentPipeline(v validators.Validator) Pipeline[models.Comment] {
	return Pipeline[models.Comment]{
		setAuthor(func(c *models.Comment) *models.Ref[models.User] { return &c.User }),
		{
			Name: "keep-post",
			Run: func(_ context.Context, w *Write[models.Comment]) error {
				if !w.IsNew() {
					w.Record.Post = models.NewRef[models.Post](w.Previous.Post.ID)
				}
				return nil
			},
		},
		{
			Name: StepTrim,
			Run: func(_ context.Context, w *Write[models.Comment]) error {
				w.Record.Text = strings.TrimSpace(w.Record.Text)
				return nil
			},
		},
		validate[models.Comment](v, nil),
	}
}
