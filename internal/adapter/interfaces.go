// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the API.
//
// The primary abstraction is [Mailer], which decouples the password reset
// flow from the delivery channel. The package ships an HTTP mail relay
// client ([NewHTTPMailer]) and a log-only implementation ([NewLogMailer]) used
// when no relay is configured.
//
// Relay responses are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-natours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers transactional mail.
type Mailer interface {
	// Send delivers mail. A nil error means the relay accepted the message.
	Send(ctx context.Context, mail models.Mail) error
}
