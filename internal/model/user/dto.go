package user

import (
	"strings"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/validation"
)

// ------------------------------------------------------------

type CreateUserPayload struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (p *CreateUserPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetUserByIDPayload struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (p *GetUserByIDPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListUsersQuery struct {
	model.PageQuery
}

func (q *ListUsersQuery) Validate() error {
	return validation.Struct(q)
}
