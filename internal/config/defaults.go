// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

const defaultDotEnvFile = ".env"

// defaults returns the configuration used when no other source provides a
// value.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-natours",
			TokenDuration: 90 * 24 * time.Hour,
			ResetTokenTTL: 10 * time.Minute,
			PasswordCost:  12,
			Environment:   EnvironmentDevelopment,
			Version:       "dev",
		},
		Storage: Storage{
			DB: DB{MaxOpenConns: 10},
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Adapter: Adapter{
			MailFrom:       "Natours <hello@natours.io>",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ResetTokenSweepInterval: 15 * time.Minute,
		},
	}
}
