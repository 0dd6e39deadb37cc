// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A zero-value config (nothing loaded at all) is accepted so that builder
// tests can run without a full environment; any populated config must carry
// a sign key, a DSN and a listen address.
func (cfg *StructuredConfig) validate() error {
	if reflect.ValueOf(*cfg).IsZero() {
		return nil
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordCost < 4 || cfg.App.PasswordCost > 31 {
		return fmt.Errorf("%w: password cost must be within [4, 31]", ErrInvalidAppConfigs)
	}
	if cfg.App.ResetTokenTTL <= 0 {
		return fmt.Errorf("%w: reset token ttl must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.Environment != EnvironmentDevelopment && cfg.App.Environment != EnvironmentProduction {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if cfg.Workers.ResetTokenSweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
