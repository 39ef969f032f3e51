package category

import (
	"strings"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/validation"
)

// ------------------------------------------------------------

type CreateCategoryPayload struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (p *CreateCategoryPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

// ------------------------------------------------------------

type RenameCategoryPayload struct {
	ID   int64  `param:"id" json:"-" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (p *RenameCategoryPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetCategoryByIDPayload struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (p *GetCategoryByIDPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type DeleteCategoryPayload struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (p *DeleteCategoryPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListCategoriesQuery struct {
	model.PageQuery
}

func (q *ListCategoriesQuery) Validate() error {
	return validation.Struct(q)
}
