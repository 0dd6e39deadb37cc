// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-natours/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	// guideColumns are the user columns shown for tour guides.
	guideColumns = []string{"id", "name", "email", "photo", "role"}

	// authorColumns are the user columns shown for review and comment authors.
	authorColumns = []string{"id", "name", "photo"}
)

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// loadUsers selects active users by id.
func loadUsers(ctx context.Context, db *DB, ids []string, columns []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return users, nil
	}

	stmt, args, err := psql.Select(columns...).
		From(usersTable).
		Where(sq.Eq{"id": ids}).
		Where(activeUsers).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows []models.User
	if err = db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, classify(usersTable, err)
	}

	for i := range rows {
		users[rows[i].ID] = &rows[i]
	}
	return users, nil
}

// populateUserRefs fills the user reference returned by ref for each record.
// References to inactive users keep only their id.
func populateUserRefs[T any](ctx context.Context, db *DB, records []T, ref func(*T) *models.Ref[models.User]) error {
	ids := make([]string, 0, len(records))
	for i := range records {
		ids = append(ids, ref(&records[i]).ID)
	}

	users, err := loadUsers(ctx, db, ids, authorColumns)
	if err != nil {
		return err
	}

	for i := range records {
		r := ref(&records[i])
		r.Doc = users[r.ID]
	}
	return nil
}

// populateGuides replaces guide ids with active guide documents. Inactive
// guides are dropped from the list.
func populateGuides(ctx context.Context, db *DB, tours []models.Tour) error {
	var ids []string
	for _, t := range tours {
		ids = append(ids, t.Guides.IDs()...)
	}

	users, err := loadUsers(ctx, db, ids, guideColumns)
	if err != nil {
		return err
	}

	for i := range tours {
		guides := make(models.RefList[models.User], 0, len(tours[i].Guides))
		for _, g := range tours[i].Guides {
			if u, ok := users[g.ID]; ok {
				guides = append(guides, models.Ref[models.User]{ID: g.ID, Doc: u})
			}
		}
		tours[i].Guides = guides
	}
	return nil
}

// populateTourReviews attaches the reviews of each tour, newest first.
func populateTourReviews(ctx context.Context, db *DB, tours []models.Tour) error {
	ids := make([]string, 0, len(tours))
	for _, t := range tours {
		ids = append(ids, t.ID)
	}

	stmt, args, err := psql.Select(reviewColumns...).
		From(reviewsTable).
		Where(sq.Eq{"tour_id": uniqueIDs(ids)}).
		OrderBy("created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var reviews []models.Review
	if err = db.SelectContext(ctx, &reviews, stmt, args...); err != nil {
		return classify(reviewsTable, err)
	}

	if err = populateReviewUsers(ctx, db, reviews); err != nil {
		return err
	}

	byTour := make(map[string][]models.Review, len(tours))
	for _, r := range reviews {
		byTour[r.Tour.ID] = append(byTour[r.Tour.ID], r)
	}
	for i := range tours {
		tours[i].Reviews = byTour[tours[i].ID]
		if tours[i].Reviews == nil {
			tours[i].Reviews = []models.Review{}
		}
	}
	return nil
}

func populateReviewUsers(ctx context.Context, db *DB, reviews []models.Review) error {
	return populateUserRefs(ctx, db, reviews, func(r *models.Review) *models.Ref[models.User] { return &r.User })
}

// populateReviewTours fills the reviewed tour with its id and name.
func populateReviewTours(ctx context.Context, db *DB, reviews []models.Review) error {
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.Tour.ID)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	stmt, args, err := psql.Select("id", "name").
		From(toursTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var tours []models.Tour
	if err = db.SelectContext(ctx, &tours, stmt, args...); err != nil {
		return classify(toursTable, err)
	}

	byID := make(map[string]*models.Tour, len(tours))
	for i := range tours {
		byID[tours[i].ID] = &tours[i]
	}
	for i := range reviews {
		reviews[i].Tour.Doc = byID[reviews[i].Tour.ID]
	}
	return nil
}

func populatePostUsers(ctx context.Context, db *DB, posts []models.Post) error {
	return populateUserRefs(ctx, db, posts, func(p *models.Post) *models.Ref[models.User] { return &p.User })
}

func populateCommentUsers(ctx context.Context, db *DB, comments []models.Comment) error {
	return populateUserRefs(ctx, db, comments, func(c *models.Comment) *models.Ref[models.User] { return &c.User })
}

// populatePostComments attaches the comments of each post, oldest first.
func populatePostComments(ctx context.Context, db *DB, posts []models.Post) error {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	stmt, args, err := psql.Select(commentColumns...).
		From(commentsTable).
		Where(sq.Eq{"post_id": uniqueIDs(ids)}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var comments []models.Comment
	if err = db.SelectContext(ctx, &comments, stmt, args...); err != nil {
		return classify(commentsTable, err)
	}

	if err = populateCommentUsers(ctx, db, comments); err != nil {
		return err
	}

	byPost := make(map[string][]models.Comment, len(posts))
	for _, c := range comments {
		byPost[c.Post.ID] = append(byPost[c.Post.ID], c)
	}
	for i := range posts {
		posts[i].Comments = byPost[posts[i].ID]
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
	}
	return nil
}
