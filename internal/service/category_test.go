package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/repository/repotest"
)

var _ CategoryRepository = (*repotest.CategoryRepository)(nil)

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repotest.NewStore().Categories())

	c, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "  Groceries "})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", c.Name)

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "   "})
		assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidInput)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "Groceries"})
		assertHTTPError(t, err, http.StatusBadRequest, CodeCategoryAlreadyExists)
	})
}

func TestCategoryService_Rename(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repotest.NewStore().Categories())

	food, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "Food"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &category.CreateCategoryPayload{Name: "Rent"})
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, &category.RenameCategoryPayload{ID: food.ID, Name: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", renamed.Name)

	same, err := svc.Rename(ctx, &category.RenameCategoryPayload{ID: food.ID, Name: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, food.ID, same.ID)

	_, err = svc.Rename(ctx, &category.RenameCategoryPayload{ID: food.ID, Name: "Rent"})
	assertHTTPError(t, err, http.StatusBadRequest, CodeCategoryAlreadyExists)

	_, err = svc.Rename(ctx, &category.RenameCategoryPayload{ID: 999, Name: "Other"})
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)

	_, err = svc.Rename(ctx, &category.RenameCategoryPayload{ID: food.ID, Name: ""})
	assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidInput)
}

func TestCategoryService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repotest.NewStore().Categories())

	_, err := svc.GetByID(ctx, 42)
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()
	svc := NewCategoryService(store.Categories())

	unused, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "Unused"})
	require.NoError(t, err)
	used, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: "Used"})
	require.NoError(t, err)
	owner, err := store.Users().Create(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	_, err = store.Expenses().Create(ctx, &expense.Expense{
		Value:    decimal.NewFromInt(10),
		Date:     model.NewDate(2021, time.March, 1),
		Category: category.Category{Base: model.Base{ID: used.ID}},
		UserID:   owner.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, unused.ID))
	_, err = svc.GetByID(ctx, unused.ID)
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)

	err = svc.Delete(ctx, used.ID)
	assertHTTPError(t, err, http.StatusConflict, CodeCategoryInUse)

	err = svc.Delete(ctx, 999)
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(repotest.NewStore().Categories())

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, &category.CreateCategoryPayload{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, model.PageQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "A", page.Items[0].Name)
}
