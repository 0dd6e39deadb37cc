// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService signs session tokens with HS256. All parameters are read
// from config once at construction.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim; tokens of other issuers are rejected.
	issuer string

	// duration controls how long an issued token remains valid.
	duration time.Duration

	now func() time.Time
}

// NewTokenService constructs a [TokenService] from the App config.
func NewTokenService(cfg config.App) TokenService {
	return newTokenService(cfg, time.Now)
}

func newTokenService(cfg config.App, now func() time.Time) *tokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		now:      now,
	}
}

// Issue signs a token for userID valid from now until now plus the
// configured duration.
func (s *tokenService) Issue(userID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.issuer, userID, s.duration, s.signKey, s.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks signature, issuer, expiry and subject of tokenString.
// Expired tokens fail with ErrExpiredToken, anything else with
// ErrInvalidToken.
func (s *tokenService) Verify(tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer, s.now())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return token, nil
}
