// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("incorrect email or password")

	ErrNotAuthenticated = errors.New("you are not logged in")
	ErrForbidden        = errors.New("you do not have permission to perform this action")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	ErrTokenCreationFailed = errors.New("error creating token")

	ErrInvalidOrExpiredResetToken = errors.New("token is invalid or has expired")
	ErrDeliveryFailed             = errors.New("there was an error sending the email, try again later")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

// Error is a failure carrying a message meant for the API client. It
// matches both its sentinel and, when set, the underlying cause with
// [errors.Is].
type Error struct {
	Err     error
	Cause   error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func newError(sentinel error, message string) error {
	return &Error{Err: sentinel, Message: message}
}

func wrapError(sentinel, cause error, message string) error {
	return &Error{Err: sentinel, Cause: cause, Message: message}
}
