// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestResetTokenGenerator_Generate(t *testing.T) {
	g := NewResetTokenGenerator()

	plain, digest, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, plain, 64)

	sum := sha256.Sum256([]byte(plain))
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)
	assert.Equal(t, digest, g.Digest(plain))

	plain2, digest2, err := g.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
	assert.NotEqual(t, digest, digest2)
}

func TestResetTokenGenerator_Deterministic(t *testing.T) {
	g := &resetTokenGenerator{random: bytes.NewReader(make([]byte, resetTokenBytes))}

	plain, _, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(make([]byte, resetTokenBytes)), plain)
}

func TestResetTokenGenerator_RandomFailure(t *testing.T) {
	g := &resetTokenGenerator{random: failingReader{}}

	_, _, err := g.Generate()
	require.Error(t, err)
}
