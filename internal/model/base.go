// Package model holds the entities persisted by the repositories and
// the request payloads accepted by the handlers.
//
// Shared building blocks (timestamps, calendar dates, pagination) live
// here; each aggregate has its own subpackage.
package model

import "time"

// Base carries the identifier and timestamps every table has.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
