// Package http serves the labeler REST API on a chi router.
//
// Public routes cover registration, login and version info. Everything else
// requires a bearer token, and /api/admin/* additionally requires the admin
// flag. Tracing, access logging and gzip run on every route.
package http
