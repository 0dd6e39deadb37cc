// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/utils"
	"github.com/MKhiriev/go-natours/models"
)

// messagesPath is the relay endpoint accepting one message per request.
const messagesPath = "/v1/messages"

type httpMailer struct {
	client *utils.HTTPClient
	from   string
	logger *logger.Logger
}

// NewMailer returns the relay client when cfg.MailRelayURL is set and a
// [NewLogMailer] otherwise.
func NewMailer(cfg config.Adapter, log *logger.Logger) (Mailer, error) {
	if strings.TrimSpace(cfg.MailRelayURL) == "" {
		log.Warn().Str("func", "NewMailer").Msg("mail relay is not configured, mail will only be logged")
		return NewLogMailer(cfg.MailFrom, log), nil
	}
	return NewHTTPMailer(cfg, log)
}

// NewHTTPMailer constructs a [Mailer] posting JSON messages to the relay at
// cfg.MailRelayURL. The API key, when set, is sent as a bearer token.
func NewHTTPMailer(cfg config.Adapter, log *logger.Logger) (Mailer, error) {
	baseURL, err := normalizeBaseURL(cfg.MailRelayURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRelayURL, err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	if cfg.MailAPIKey != "" {
		client.SetAuthToken(cfg.MailAPIKey)
	}

	return &httpMailer{client: client, from: cfg.MailFrom, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [Mailer]. The sender defaults to the configured address.
func (m *httpMailer) Send(ctx context.Context, mail models.Mail) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(mail.To) == "" {
		return ErrEmptyRecipient
	}
	if mail.From == "" {
		mail.From = m.from
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mail).
		Post(messagesPath)
	if err != nil {
		log.Err(err).Str("func", "*httpMailer.Send").Msg("mail relay request failed")
		return fmt.Errorf("%w: %w", ErrBadGateway, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*httpMailer.Send").Int("status", resp.StatusCode()).Msg("mail relay rejected message")
		return err
	}

	log.Info().Str("func", "*httpMailer.Send").Str("subject", mail.Subject).Msg("mail accepted by relay")
	return nil
}
