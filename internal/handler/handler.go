// Package handler is the HTTP layer. Each handler binds and validates a
// request payload, calls one service operation and writes its result.
package handler
