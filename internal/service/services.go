// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-natours/internal/adapter"
	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/crypto"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// Services aggregates every service of the API.
type Services struct {
	AppInfoService AppInfoService
	AuthService    AuthService
	TokenService   TokenService
	UserService    UserService
	TourService    TourService
	ReviewService  CRUDService[models.Review]
	PostService    CRUDService[models.Post]
	CommentService CRUDService[models.Comment]
}

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Mailer      adapter.Mailer
	Hasher      crypto.PasswordHasher
	ResetTokens crypto.ResetTokenGenerator
	Validator   validators.Validator
}

// NewUserResource returns the user resource running the user write
// pipeline.
func NewUserResource(users store.UserRepository, v validators.Validator, hasher crypto.PasswordHasher, logger *logger.Logger) *Resource[models.User, *models.User] {
	return NewResource[models.User]("user", users, userPipeline(v, hasher, time.Now), logger)
}

// NewServices wires every service onto storages.
func NewServices(storages *store.Storages, deps Dependencies, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, err
	}

	users := NewUserResource(storages.UserRepository, deps.Validator, deps.Hasher, logger)
	tokens := NewTokenService(cfg)
	auth := NewAuthService(users, storages.UserRepository, tokens, deps.Hasher, deps.ResetTokens, deps.Mailer, cfg, logger)

	return &Services{
		AppInfoService: appInfo,
		AuthService:    auth,
		TokenService:   tokens,
		UserService:    NewUserService(users, storages.UserRepository, storages.ReviewRepository, storages.TourRepository),
		TourService:    NewTourService(storages.TourRepository, deps.Validator, logger),
		ReviewService:  NewReviewService(storages.ReviewRepository, storages.TourRepository, deps.Validator, logger),
		PostService:    NewPostService(storages.PostRepository, deps.Validator, logger),
		CommentService: NewCommentService(storages.CommentRepository, deps.Validator, logger),
	}, nil
}
