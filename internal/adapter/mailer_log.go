// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/models"
)

type logMailer struct {
	from   string
	logger *logger.Logger
}

// NewLogMailer returns a [Mailer] that only logs the envelope of each message.
// Bodies carry reset links and are never logged.
func NewLogMailer(from string, log *logger.Logger) Mailer {
	return &logMailer{from: from, logger: log}
}

func (m *logMailer) Send(ctx context.Context, mail models.Mail) error {
	if strings.TrimSpace(mail.To) == "" {
		return ErrEmptyRecipient
	}
	if mail.From == "" {
		mail.From = m.from
	}

	logger.FromContext(ctx).Info().
		Str("func", "*logMailer.Send").
		Str("from", mail.From).
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Int("body_bytes", len(mail.Body)).
		Msg("mail delivery skipped, relay not configured")
	return nil
}
