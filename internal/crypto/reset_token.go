// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/MKhiriev/go-natours/internal/utils"
)

// resetTokenBytes is the amount of randomness in a reset token.
const resetTokenBytes = 32

type resetTokenGenerator struct {
	random io.Reader
}

// NewResetTokenGenerator returns a [ResetTokenGenerator] reading from the OS
// CSPRNG. Tokens are 64 hex characters; digests are their SHA-256 in hex.
func NewResetTokenGenerator() ResetTokenGenerator {
	return &resetTokenGenerator{random: rand.Reader}
}

func (g *resetTokenGenerator) Generate() (string, string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", "", fmt.Errorf("error generating reset token: %w", err)
	}

	plain := hex.EncodeToString(buf)
	return plain, g.Digest(plain), nil
}

func (g *resetTokenGenerator) Digest(plain string) string {
	return utils.HashString(plain)
}
