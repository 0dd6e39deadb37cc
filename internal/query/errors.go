// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import "errors"

// ErrInvalidQuery is returned for malformed query strings, unknown fields,
// unsupported operators and values that do not match the field kind.
var ErrInvalidQuery = errors.New("invalid query")
