// Package user models the owners of expenses.
package user

import "github.com/deppfellow/expense-tracker/internal/model"

type User struct {
	model.Base
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
