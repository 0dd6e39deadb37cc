// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, "pass1234", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, h.Compare(hash, "pass1234"))
	assert.False(t, h.Compare(hash, "pass12345"))
	assert.False(t, h.Compare("not-a-hash", "pass1234"))

	again, err := h.Hash("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted hashes must differ")
}

func TestPasswordHasher_Cost(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{cost: 0, want: DefaultPasswordCost},
		{cost: 99, want: DefaultPasswordCost},
	}

	for _, tt := range tests {
		h := NewPasswordHasher(tt.cost).(*bcryptHasher)
		assert.Equal(t, tt.want, h.cost)
	}

	hash, err := NewPasswordHasher(5).Hash("pass1234")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestPasswordHasher_Hash_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}
