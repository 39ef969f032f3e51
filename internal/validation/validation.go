// Package validation binds request data and turns validation
// failures into field-level errors the client can act on.
//
// Struct tags are checked with go-playground/validator; rules that
// tags cannot express are reported as CustomValidationErrors.
package validation
