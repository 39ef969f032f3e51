// Package service holds the business rules between the handlers and
// the repositories.
//
// Services depend on small repository interfaces declared here, so
// they can be exercised with in-memory fakes. Every failure a client
// can act on is returned as an *errs.HTTPError with a stable code.
package service
