// Package middleware holds the global Echo middleware: request IDs,
// the request-scoped logger, New Relic tracing, rate limiting, request
// logging, panic recovery and the error handler that turns every error
// into the JSON error body.
package middleware
