package repotest

import (
	"context"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, name, email string) (*user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("User.Create")

	for _, u := range s.users {
		if u.Email == email {
			return nil, uniqueViolation("users", "users_email_key")
		}
	}

	u := user.User{Base: s.nextBase(), Name: name, Email: email}
	s.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("User.GetByID")

	u, ok := s.users[id]
	if !ok {
		return nil, noRows("users", id)
	}
	return &u, nil
}

func (r *UserRepository) List(_ context.Context, q model.PageQuery) (model.Page[user.User], error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("User.List")

	items := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		items = append(items, u)
	}
	return paginate(items, q, func(a, b user.User) bool { return a.ID < b.ID }), nil
}
