// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server side secrets handling: password hashing
// and password reset tokens.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns the bcrypt hash of password.
	Hash(password string) (string, error)

	// Compare reports whether candidate matches hash. The comparison runs
	// in constant time.
	Compare(hash, candidate string) bool
}

// ResetTokenGenerator issues password reset tokens. Only the digest is
// stored; the plain token is mailed to the user.
type ResetTokenGenerator interface {
	// Generate returns a fresh random token and its digest.
	Generate() (plain string, digest string, err error)

	// Digest returns the stored form of a plain token.
	Digest(plain string) string
}
