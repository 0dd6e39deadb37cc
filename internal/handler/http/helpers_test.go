// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/query"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeCRUD implements service.CRUDService. Nil fn fields answer with
// store.ErrNotFound or empty results.
type fakeCRUD[T any] struct {
	createFn func(ctx context.Context, rec *T) (*T, error)
	getFn    func(ctx context.Context, id string, opts ...service.ReadOption) (*T, error)
	listFn   func(ctx context.Context, spec query.Spec, opts ...service.ReadOption) ([]T, error)
	updateFn func(ctx context.Context, id string, patch []byte, opts ...service.ReadOption) (*T, error)
	deleteFn func(ctx context.Context, id string, opts ...service.ReadOption) error
}

func (f *fakeCRUD[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if f.createFn == nil {
		return rec, nil
	}
	return f.createFn(ctx, rec)
}

func (f *fakeCRUD[T]) Get(ctx context.Context, id string, opts ...service.ReadOption) (*T, error) {
	if f.getFn == nil {
		return nil, store.ErrNotFound
	}
	return f.getFn(ctx, id, opts...)
}

func (f *fakeCRUD[T]) List(ctx context.Context, spec query.Spec, opts ...service.ReadOption) ([]T, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, spec, opts...)
}

func (f *fakeCRUD[T]) Update(ctx context.Context, id string, patch []byte, opts ...service.ReadOption) (*T, error) {
	if f.updateFn == nil {
		return nil, store.ErrNotFound
	}
	return f.updateFn(ctx, id, patch, opts...)
}

func (f *fakeCRUD[T]) Delete(ctx context.Context, id string, opts ...service.ReadOption) error {
	if f.deleteFn == nil {
		return store.ErrNotFound
	}
	return f.deleteFn(ctx, id, opts...)
}

func (f *fakeCRUD[T]) Fields() query.Fields {
	return query.Fields{"id": {Column: "id"}}
}

type fakeUserService struct {
	fakeCRUD[models.User]

	updateMeFn func(ctx context.Context, userID string, patch []byte) (*models.User, error)
	deleteMeFn func(ctx context.Context, userID string) error
}

func (f *fakeUserService) UpdateMe(ctx context.Context, userID string, patch []byte) (*models.User, error) {
	return f.updateMeFn(ctx, userID, patch)
}

func (f *fakeUserService) DeleteMe(ctx context.Context, userID string) error {
	return f.deleteMeFn(ctx, userID)
}

type fakeTourService struct {
	fakeCRUD[models.Tour]

	statsFn     func(ctx context.Context) ([]models.TourStats, error)
	planFn      func(ctx context.Context, year string) ([]models.MonthlyPlan, error)
	withinFn    func(ctx context.Context, distance, latlng, unit string, spec query.Spec) ([]models.Tour, error)
	distancesFn func(ctx context.Context, latlng, unit string) ([]models.TourDistance, error)
}

func (f *fakeTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return f.statsFn(ctx)
}

func (f *fakeTourService) MonthlyPlan(ctx context.Context, year string) ([]models.MonthlyPlan, error) {
	return f.planFn(ctx, year)
}

func (f *fakeTourService) Within(ctx context.Context, distance, latlng, unit string, spec query.Spec) ([]models.Tour, error) {
	return f.withinFn(ctx, distance, latlng, unit, spec)
}

func (f *fakeTourService) Distances(ctx context.Context, latlng, unit string) ([]models.TourDistance, error) {
	return f.distancesFn(ctx, latlng, unit)
}

// fakeAuthService authenticates the tokens listed in users and rejects
// everything else the way the real service does.
type fakeAuthService struct {
	users map[string]*models.User

	signupFn         func(ctx context.Context, req models.SignupRequest) (*models.User, models.Token, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (*models.User, models.Token, error)
	forgotFn         func(ctx context.Context, email, baseURL string) error
	resetFn          func(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (*models.User, models.Token, error)
	updatePasswordFn func(ctx context.Context, userID string, req models.UpdatePasswordRequest) (*models.User, models.Token, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, models.Token, error) {
	return f.signupFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, models.Token, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) Authenticate(_ context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, &service.Error{Err: service.ErrNotAuthenticated, Message: msgNotLoggedIn}
	}
	user, ok := f.users[tokenString]
	if !ok {
		return nil, &service.Error{
			Err: service.ErrNotAuthenticated, Cause: service.ErrInvalidToken,
			Message: "Invalid token. Please log in again!",
		}
	}
	return user, nil
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	return f.forgotFn(ctx, email, baseURL)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (*models.User, models.Token, error) {
	return f.resetFn(ctx, resetToken, req)
}

func (f *fakeAuthService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (*models.User, models.Token, error) {
	return f.updatePasswordFn(ctx, userID, req)
}

type fakeAppInfoService struct {
	version models.VersionResponse
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) models.VersionResponse {
	return f.version
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

// Tokens accepted by the fake auth service.
const (
	adminToken = "admin-token"
	guideToken = "guide-token"
	userToken  = "user-token"
)

var (
	testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testAdmin = &models.User{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin, Active: true}
	testGuide = &models.User{ID: "guide-1", Name: "Guide", Role: models.RoleLeadGuide, Active: true}
	testUser  = &models.User{ID: "user-1", Name: "Jonas", Email: "jonas@example.com", Role: models.RoleUser, Active: true}
)

// testServices holds the fakes behind a test handler so that tests can set
// fn fields after construction.
type testServices struct {
	auth     *fakeAuthService
	users    *fakeUserService
	tours    *fakeTourService
	reviews  *fakeCRUD[models.Review]
	posts    *fakeCRUD[models.Post]
	comments *fakeCRUD[models.Comment]
}

func testAppConfig() config.App {
	return config.App{
		TokenDuration: 90 * 24 * time.Hour,
		Environment:   "development",
		Version:       "test",
	}
}

func newTestHandler(t *testing.T, app config.App) (*Handler, *testServices) {
	t.Helper()

	fakes := &testServices{
		auth: &fakeAuthService{users: map[string]*models.User{
			adminToken: testAdmin,
			guideToken: testGuide,
			userToken:  testUser,
		}},
		users:    &fakeUserService{},
		tours:    &fakeTourService{},
		reviews:  &fakeCRUD[models.Review]{},
		posts:    &fakeCRUD[models.Post]{},
		comments: &fakeCRUD[models.Comment]{},
	}
	services := &service.Services{
		AppInfoService: &fakeAppInfoService{version: models.VersionResponse{Version: "1.2.3"}},
		AuthService:    fakes.auth,
		UserService:    fakes.users,
		TourService:    fakes.tours,
		ReviewService:  fakes.reviews,
		PostService:    fakes.posts,
		CommentService: fakes.comments,
	}

	h := NewHandler(services, &config.StructuredConfig{App: app}, logger.Nop())
	h.now = func() time.Time { return testNow }
	return h, fakes
}

// envelope is the decoded form of both success and error responses.
type envelope struct {
	Status  string                     `json:"status"`
	Message string                     `json:"message"`
	Results *int                       `json:"results"`
	Token   string                     `json:"token"`
	Data    map[string]json.RawMessage `json:"data"`
	Errors  []models.FieldError        `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// dataAs decodes the document stored under key.
func dataAs[T any](t *testing.T, body envelope, key string) T {
	t.Helper()

	var v T
	require.Contains(t, body.Data, key)
	require.NoError(t, json.Unmarshal(body.Data[key], &v))
	return v
}
