// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query turns URL query strings into database queries.
//
// A request such as
//
//	GET /api/v1/tours?difficulty=easy&price[gte]=100&sort=-price,name&fields=name,price&page=2&limit=10
//
// is parsed by [Parse] into an entity agnostic [Spec]. [Apply] then
// translates the Spec into squirrel predicates, ORDER BY and LIMIT/OFFSET
// clauses against an allow-list of queryable [Fields] declared by each
// resource. Unknown fields and unparsable values are rejected with
// [ErrInvalidQuery]. [Project] reduces encoded results to the selected fields.
package query
