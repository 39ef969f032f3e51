// Package category models expense categories.
package category

import "github.com/deppfellow/expense-tracker/internal/model"

// Category groups expenses under a unique, non-empty name.
type Category struct {
	model.Base
	Name string `json:"name" db:"name"`
}
