// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-natours/internal/adapter"
	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/crypto"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
)

// ResetPasswordPath is the route prefix of the reset link sent by mail.
const ResetPasswordPath = "/api/v1/users/resetPassword/"

// authService is the concrete implementation of AuthService.
type authService struct {
	// users writes accounts through the user pipeline.
	users *Resource[models.User, *models.User]

	// userRepository serves lookups and the bookkeeping writes that bypass
	// the pipeline (reset token).
	userRepository store.UserRepository

	tokens      TokenService
	hasher      crypto.PasswordHasher
	resetTokens crypto.ResetTokenGenerator
	mailer      adapter.Mailer

	// resetTokenTTL is how long a reset token stays valid.
	resetTokenTTL time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService]. users must be the resource
// that runs the user write pipeline.
func NewAuthService(
	users *Resource[models.User, *models.User],
	userRepository store.UserRepository,
	tokens TokenService,
	hasher crypto.PasswordHasher,
	resetTokens crypto.ResetTokenGenerator,
	mailer adapter.Mailer,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:          users,
		userRepository: userRepository,
		tokens:         tokens,
		hasher:         hasher,
		resetTokens:    resetTokens,
		mailer:         mailer,
		resetTokenTTL:  cfg.ResetTokenTTL,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a regular user account and logs it in. The requested role
// is ignored: every signup gets the "user" role.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.Create(ctx, &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Photo:           req.Photo,
		Role:            models.RoleUser,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		log.Debug().Err(err).Msg("signup failed")
		return nil, models.Token{}, err
	}

	return a.withToken(user)
}

// Login checks the credentials of an active user. Unknown email and wrong
// password give the same error.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (*models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return nil, models.Token{}, newError(ErrInvalidDataProvided, "Please provide email and password!")
	}

	user, err := a.userRepository.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.Token{}, newError(ErrWrongPassword, "Incorrect email or password")
		}
		log.Err(err).Msg("user search by email failed")
		return nil, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Compare(user.Password, req.Password) {
		log.Debug().Str("user_id", user.ID).Msg("wrong password")
		return nil, models.Token{}, newError(ErrWrongPassword, "Incorrect email or password")
	}

	return a.withToken(user)
}

// Authenticate resolves the subject of a session token. The subject must
// still be active and must not have changed the password after the token
// was issued.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, newError(ErrNotAuthenticated, "You are not logged in! Please log in to get access.")
	}

	token, err := a.tokens.Verify(tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		if errors.Is(err, ErrExpiredToken) {
			return nil, wrapError(ErrNotAuthenticated, err, "Your token has expired! Please log in again.")
		}
		return nil, wrapError(ErrNotAuthenticated, err, "Invalid token. Please log in again!")
	}

	user, err := a.userRepository.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return nil, wrapError(ErrNotAuthenticated, err, "The user belonging to this token does no longer exist.")
		}
		log.Err(err).Msg("token subject lookup failed")
		return nil, fmt.Errorf("token subject lookup failed: %w", err)
	}

	if user.ChangedPasswordAfter(token.IssuedAtTime()) {
		return nil, newError(ErrNotAuthenticated, "User recently changed password! Please log in again.")
	}

	return user, nil
}

// ForgotPassword stores a fresh reset token for the account and mails the
// reset link. A second request replaces the first token.
func (a *authService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(email) == "" {
		return newError(ErrInvalidDataProvided, "Please provide your email")
	}

	user, err := a.userRepository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return wrapError(store.ErrNotFound, err, "There is no user with that email address.")
		}
		return fmt.Errorf("user search by email failed: %w", err)
	}

	plain, digest, err := a.resetTokens.Generate()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	expires := a.now().Add(a.resetTokenTTL)
	if err = a.userRepository.SetPasswordReset(ctx, user.ID, &digest, &expires); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error storing reset token")
		return fmt.Errorf("error storing reset token: %w", err)
	}

	if err = a.mailer.Send(ctx, a.resetMail(user, baseURL, plain)); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error sending reset mail")
		if clearErr := a.userRepository.SetPasswordReset(ctx, user.ID, nil, nil); clearErr != nil {
			log.Err(clearErr).Str("user_id", user.ID).Msg("error clearing reset token")
		}
		return wrapError(ErrDeliveryFailed, err, "There was an error sending the email. Try again later!")
	}

	log.Info().Str("user_id", user.ID).Msg("password reset token sent")
	return nil
}

func (a *authService) resetMail(user *models.User, baseURL, plain string) models.Mail {
	link := strings.TrimRight(baseURL, "/") + ResetPasswordPath + plain

	return models.Mail{
		To:      user.Email,
		Subject: fmt.Sprintf("Your password reset token (valid for %d min)", int(a.resetTokenTTL.Minutes())),
		Body: fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s.\n"+
			"If you didn't forget your password, please ignore this email!", link),
	}
}

// ResetPassword sets a new password for the holder of a valid reset token.
// The token is consumed.
func (a *authService) ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (*models.User, models.Token, error) {
	user, err := a.userRepository.FindByResetToken(ctx, a.resetTokens.Digest(resetToken), a.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.Token{}, wrapError(ErrInvalidOrExpiredResetToken, err, "Token is invalid or has expired")
		}
		return nil, models.Token{}, fmt.Errorf("reset token lookup failed: %w", err)
	}

	rec := *user
	rec.ClearPasswordReset()

	saved, err := a.setPassword(ctx, user, &rec, req.Password, req.PasswordConfirm)
	if err != nil {
		return nil, models.Token{}, err
	}

	return a.withToken(saved)
}

// UpdatePassword changes the password of a logged-in user after checking
// the current one.
func (a *authService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (*models.User, models.Token, error) {
	user, err := a.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if req.PasswordCurrent == "" || !a.hasher.Compare(user.Password, req.PasswordCurrent) {
		return nil, models.Token{}, newError(ErrWrongPassword, "Your current password is wrong.")
	}

	rec := *user
	saved, err := a.setPassword(ctx, user, &rec, req.Password, req.PasswordConfirm)
	if err != nil {
		return nil, models.Token{}, err
	}

	return a.withToken(saved)
}

func (a *authService) setPassword(ctx context.Context, previous, rec *models.User, password, confirm string) (*models.User, error) {
	rec.Password = password
	rec.PasswordConfirm = confirm

	return a.users.save(ctx, &Write[models.User]{
		Record:   rec,
		Previous: previous,
		Changed: map[string]bool{
			validators.FieldPassword:        true,
			validators.FieldPasswordConfirm: true,
		},
	})
}

func (a *authService) withToken(user *models.User) (*models.User, models.Token, error) {
	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.Token{}, err
	}
	return user, token, nil
}
