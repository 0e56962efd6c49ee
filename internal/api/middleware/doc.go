// Package middleware provides the gin middleware in front of the shell API:
// CORS, per-IP rate limiting, request ids and request logging.
package middleware
