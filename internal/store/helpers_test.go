// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "0190f4a4-7d3c-7c1e-9d5e-1f2a3b4c5d01"
	testUserID2 = "0190f4a4-7d3c-7c1e-9d5e-1f2a3b4c5d02"
	testTourID  = "0190f4a4-7d3c-7c1e-9d5e-1f2a3b4c5e01"
	testPostID  = "0190f4a4-7d3c-7c1e-9d5e-1f2a3b4c5f01"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewDB(sqlx.NewDb(conn, "pgx"), logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, ConstraintName: "test_constraint"}
}

var userRowColumns = []string{
	"id", "name", "email", "photo", "role", "password", "password_changed_at",
	"password_reset_token", "password_reset_expires", "active", "created_at",
}
