package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/user"
	"github.com/deppfellow/expense-tracker/internal/sqlerr"
)

type UserRepository interface {
	Create(ctx context.Context, name, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context, q model.PageQuery) (model.Page[user.User], error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, payload *user.CreateUserPayload) (*user.User, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, errInvalidInput("name", "must not be empty")
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return nil, errInvalidInput("email", "must not be empty")
	}

	u, err := s.repo.Create(ctx, name, email)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, errAlreadyExists(CodeUserAlreadyExists, "A user with this email already exists")
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errUserNotFound(id)
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, q model.PageQuery) (model.Page[user.User], error) {
	return s.repo.List(ctx, q)
}
