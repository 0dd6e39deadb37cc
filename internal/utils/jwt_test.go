// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "go-natours"
	testSignKey = "test-sign-key"
	testUserID  = "0190f4a4-7d3c-7c1e-9d5e-1f2a3b4c5d01"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	token, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey, now)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, testUserID, token.UserID)
	assert.Equal(t, now.Unix(), token.IssuedAtTime().Unix())
	assert.Equal(t, now.Add(time.Hour).Unix(), token.ExpiresAtTime().Unix())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{name: "no issuer", userID: testUserID, duration: time.Hour, key: testSignKey},
		{name: "no user", issuer: testIssuer, duration: time.Hour, key: testSignKey},
		{name: "no duration", issuer: testIssuer, userID: testUserID, key: testSignKey},
		{name: "no key", issuer: testIssuer, userID: testUserID, duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key, now)
			require.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	issued, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey, now)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer, now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, now.Unix(), parsed.IssuedAtTime().Unix())
	assert.Equal(t, issued.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	issued, err := GenerateJWTToken(testIssuer, testUserID, time.Hour, testSignKey, now)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(issued.SignedString, "other", testIssuer, now)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer, now.Add(2*time.Hour))
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, "someone-else", now)
		require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken("not.a.jwt", testSignKey, testIssuer, now)
		require.ErrorIs(t, err, jwt.ErrTokenMalformed)
	})

	t.Run("other algorithm", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}).SignedString([]byte(testSignKey))
		require.NoError(t, err)

		_, err = ValidateAndParseJWTToken(raw, testSignKey, testIssuer, now)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer   abc", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
