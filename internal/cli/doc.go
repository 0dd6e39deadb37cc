// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements natoursctl, the administration tool of the natours
// API.
//
// Commands:
//
//	natoursctl migrate up|down|status   manage the database schema
//	natoursctl seed -f data.yaml        import users, tours and reviews
//	natoursctl purge --yes              delete all users, tours and reviews
//
// The database and application settings are read the same way as for the
// server (defaults, .env, environment, JSON file) with the exception of
// command-line flags, which belong to the commands. --dsn overrides the
// configured connection string.
package cli
