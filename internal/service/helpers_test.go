// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/crypto"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
	"github.com/google/uuid"
)

// ─────────────────────────────────────────────
// In-memory store fakes
// ─────────────────────────────────────────────

// memRepo is an in-memory store.CRUD. Scopes and relations are ignored.
type memRepo[T any, P store.Entity[T]] struct {
	mu      sync.Mutex
	records map[string]T
	order   []string

	createErr error
}

func newMemRepo[T any, P store.Entity[T]]() *memRepo[T, P] {
	return &memRepo[T, P]{records: make(map[string]T)}
}

func (m *memRepo[T, P]) Create(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if P(rec).GetID() == "" {
		P(rec).SetID(uuid.NewString())
	}
	m.records[P(rec).GetID()] = *rec
	m.order = append(m.order, P(rec).GetID())
	return nil
}

func (m *memRepo[T, P]) FindByID(_ context.Context, id string, _ ...store.FindOption) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, store.ErrNotFound)
	}
	return &rec, nil
}

func (m *memRepo[T, P]) FindOne(_ context.Context, _ ...store.FindOption) (*T, error) {
	return nil, store.ErrNotFound
}

func (m *memRepo[T, P]) Find(_ context.Context, _ query.Spec, _ ...store.FindOption) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.all(), nil
}

func (m *memRepo[T, P]) all() []T {
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (m *memRepo[T, P]) Count(_ context.Context, _ query.Spec, _ ...store.FindOption) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *memRepo[T, P]) Update(_ context.Context, rec *T, _ ...store.FindOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[P(rec).GetID()]; !ok {
		return store.ErrNotFound
	}
	m.records[P(rec).GetID()] = *rec
	return nil
}

func (m *memRepo[T, P]) UpdateFields(_ context.Context, _ string, _ map[string]any, _ ...store.FindOption) error {
	return nil
}

func (m *memRepo[T, P]) Delete(_ context.Context, id string, _ ...store.FindOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memRepo[T, P]) Fields() query.Fields {
	return query.Fields{"id": {Column: "id"}}
}

// edit applies fn to a stored record.
func (m *memRepo[T, P]) edit(id string, fn func(*T)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.records[id]
	fn(&rec)
	m.records[id] = rec
}

type memUsers struct {
	*memRepo[models.User, *models.User]

	// onDelete mimics ON DELETE CASCADE of rows owned by the user.
	onDelete func(id string)
}

func newMemUsers() *memUsers {
	return &memUsers{memRepo: newMemRepo[models.User]()}
}

// FindByID hides inactive users like the default scope does.
func (m *memUsers) FindByID(ctx context.Context, id string, opts ...store.FindOption) (*models.User, error) {
	u, err := m.memRepo.FindByID(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) Delete(ctx context.Context, id string, opts ...store.FindOption) error {
	if err := m.memRepo.Delete(ctx, id, opts...); err != nil {
		return err
	}
	if m.onDelete != nil {
		m.onDelete(id)
	}
	return nil
}

func (m *memUsers) find(match func(u models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.all() {
		if u.Active && match(u) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return m.find(func(u models.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == tokenHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now)
	})
}

func (m *memUsers) SetPasswordReset(_ context.Context, id string, tokenHash *string, expires *time.Time) error {
	m.edit(id, func(u *models.User) {
		u.PasswordResetToken = tokenHash
		u.PasswordResetExpires = expires
	})
	return nil
}

func (m *memUsers) Deactivate(_ context.Context, id string) error {
	m.edit(id, func(u *models.User) { u.Active = false })
	return nil
}

func (m *memUsers) ClearExpiredResetTokens(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type memReviews struct {
	*memRepo[models.Review, *models.Review]
}

func newMemReviews() *memReviews {
	return &memReviews{memRepo: newMemRepo[models.Review]()}
}

func (m *memReviews) TourIDsByUser(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for _, r := range m.all() {
		if r.User.ID == userID {
			ids = append(ids, r.Tour.ID)
		}
	}
	return ids, nil
}

// dropByUser mimics ON DELETE CASCADE of a user's reviews.
func (m *memReviews) dropByUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, r := range m.records {
		if r.User.ID == userID {
			delete(m.records, id)
		}
	}
}

type memTours struct {
	*memRepo[models.Tour, *models.Tour]
	reviews *memReviews

	lastLat, lastLng, lastRadius, lastMultiplier float64
	lastYear                                     int
	recalculated                                 []string
}

func newMemTours(reviews *memReviews) *memTours {
	return &memTours{memRepo: newMemRepo[models.Tour](), reviews: reviews}
}

func (m *memTours) Stats(_ context.Context, _ float64) ([]models.TourStats, error) {
	return []models.TourStats{}, nil
}

func (m *memTours) MonthlyPlan(_ context.Context, year int) ([]models.MonthlyPlan, error) {
	m.lastYear = year
	return []models.MonthlyPlan{}, nil
}

func (m *memTours) Within(_ context.Context, lat, lng, radius float64, _ query.Spec) ([]models.Tour, error) {
	m.lastLat, m.lastLng, m.lastRadius = lat, lng, radius
	return []models.Tour{}, nil
}

func (m *memTours) Distances(_ context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	m.lastLat, m.lastLng, m.lastMultiplier = lat, lng, multiplier
	return []models.TourDistance{}, nil
}

// RecalculateRatings averages the reviews of the tour like the SQL
// statement does.
func (m *memTours) RecalculateRatings(_ context.Context, tourID string) (models.RatingsSummary, error) {
	reviews, _ := m.reviews.Find(context.Background(), query.Spec{})

	summary := models.RatingsSummary{TourID: tourID, RatingsAverage: models.DefaultRatingsAverage}
	var sum float64
	for _, r := range reviews {
		if r.Tour.ID == tourID {
			sum += r.Rating
			summary.RatingsQuantity++
		}
	}
	if summary.RatingsQuantity > 0 {
		summary.RatingsAverage = sum / float64(summary.RatingsQuantity)
	}

	m.recalculated = append(m.recalculated, tourID)
	m.edit(tourID, func(t *models.Tour) {
		t.RatingsAverage = summary.RatingsAverage
		t.RatingsQuantity = summary.RatingsQuantity
	})
	return summary, nil
}

// ─────────────────────────────────────────────
// Shared fixtures
// ─────────────────────────────────────────────

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-natours",
		TokenDuration: 90 * 24 * time.Hour,
		ResetTokenTTL: 10 * time.Minute,
	}
}

// testHasher uses the lowest bcrypt cost to keep tests fast.
func testHasher() crypto.PasswordHasher {
	return crypto.NewPasswordHasher(4)
}

func asUser(ctx context.Context, id string, role models.Role) context.Context {
	return utils.WithCurrentUser(ctx, &models.User{ID: id, Role: role, Active: true})
}

func uuidOf(n int) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}
