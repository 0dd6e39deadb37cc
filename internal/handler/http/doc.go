// Package http implements the REST transport of the natours API.
//
// All routes live under /api/v1. Resources (tours, users, reviews, posts and
// comments) are served by one generic handler factory that parses the list
// query (filters, sort, fields, pagination), enforces authentication with
// protect and roles with restrictTo, and writes the JSend-style envelope:
//
//	{"status":"success","results":2,"data":{"data":[...]}}
//	{"status":"fail","message":"No document found with that ID"}
//
// Errors returned by the services are mapped to status codes and messages in
// errors_mapper.go. Tracing, access logging and gzip run as middleware in
// front of every route.
package http
