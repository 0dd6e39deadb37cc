// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrInvalidRelayURL     = errors.New("invalid mail relay url")
	ErrEmptyRecipient      = errors.New("mail has no recipient")
	ErrBadRequest          = errors.New("mail relay rejected the message")
	ErrUnauthorized        = errors.New("mail relay unauthorized")
	ErrRateLimited         = errors.New("mail relay rate limited")
	ErrInternalServerError = errors.New("mail relay internal error")
	ErrBadGateway          = errors.New("mail relay unavailable")
)
