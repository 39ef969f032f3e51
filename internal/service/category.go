package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/sqlerr"
)

type CategoryRepository interface {
	List(ctx context.Context, q model.PageQuery) (model.Page[category.Category], error)
	GetByID(ctx context.Context, id int64) (*category.Category, error)
	GetByName(ctx context.Context, name string) (*category.Category, error)
	Create(ctx context.Context, name string) (*category.Category, error)
	Rename(ctx context.Context, id int64, name string) (*category.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, q model.PageQuery) (model.Page[category.Category], error) {
	return s.repo.List(ctx, q)
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errCategoryNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

// Create stores a new category. The name is trimmed and must be
// non-empty and unused.
func (s *CategoryService) Create(ctx context.Context, payload *category.CreateCategoryPayload) (*category.Category, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, errInvalidInput("name", "must not be empty")
	}

	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, name)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, errCategoryExists(name)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("category_id", c.ID).
		Str("name", c.Name).
		Msg("category created")

	return c, nil
}

// Rename changes the name of an existing category.
func (s *CategoryService) Rename(ctx context.Context, payload *category.RenameCategoryPayload) (*category.Category, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, errInvalidInput("name", "must not be empty")
	}

	current, err := s.GetByID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}
	if current.Name == name {
		return current, nil
	}

	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	c, err := s.repo.Rename(ctx, payload.ID, name)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, errCategoryNotFound(payload.ID)
		case sqlerr.IsUniqueViolation(err):
			return nil, errCategoryExists(name)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("category_id", c.ID).
		Str("old_name", current.Name).
		Str("name", c.Name).
		Msg("category renamed")

	return c, nil
}

// Delete removes a category that no expense references.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case isNotFound(err):
			return errCategoryNotFound(id)
		case sqlerr.IsForeignKeyViolation(err):
			return errCategoryInUse(id)
		}
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return errCategoryExists(name)
	case isNotFound(err):
		return nil
	default:
		return err
	}
}

func errCategoryExists(name string) error {
	return errAlreadyExists(CodeCategoryAlreadyExists, fmt.Sprintf("A category named %q already exists", name))
}
