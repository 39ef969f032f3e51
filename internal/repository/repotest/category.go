package repotest

import (
	"context"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
)

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) List(_ context.Context, q model.PageQuery) (model.Page[category.Category], error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.List")

	items := make([]category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		items = append(items, c)
	}
	return paginate(items, q, func(a, b category.Category) bool { return a.ID < b.ID }), nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*category.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.GetByID")

	c, ok := s.categories[id]
	if !ok {
		return nil, noRows("categories", id)
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(_ context.Context, name string) (*category.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.GetByName")

	for _, c := range s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, noRows("categories", name)
}

func (r *CategoryRepository) Create(_ context.Context, name string) (*category.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.Create")

	for _, c := range s.categories {
		if c.Name == name {
			return nil, uniqueViolation("categories", "categories_name_key")
		}
	}

	c := category.Category{Base: s.nextBase(), Name: name}
	s.categories[c.ID] = c
	return &c, nil
}

func (r *CategoryRepository) Rename(_ context.Context, id int64, name string) (*category.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.Rename")

	c, ok := s.categories[id]
	if !ok {
		return nil, noRows("categories", id)
	}
	for _, other := range s.categories {
		if other.ID != id && other.Name == name {
			return nil, uniqueViolation("categories", "categories_name_key")
		}
	}

	c.Name = name
	s.categories[id] = c
	s.syncCategory(c)
	return &c, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Category.Delete")

	if _, ok := s.categories[id]; !ok {
		return noRows("categories", id)
	}
	for _, e := range s.expenses {
		if e.Category.ID == id {
			return foreignKeyViolation("expenses", "expenses_category_id_fkey")
		}
	}

	delete(s.categories, id)
	return nil
}

// syncCategory mirrors the join the SQL repository does on every read.
func (s *Store) syncCategory(c category.Category) {
	for id, e := range s.expenses {
		if e.Category.ID == c.ID {
			e.Category = c
			s.expenses[id] = e
		}
	}
}
