// Package errs defines the error shapes returned to API clients.
//
// Every error that reaches the HTTP layer is (or is converted to) an
// *HTTPError, so clients always receive the same JSON structure:
// a machine-friendly code, a human message, the status and optional
// field-level errors.
package errs
