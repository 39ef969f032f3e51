package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/repository/repotest"
)

var _ ExpenseRepository = (*repotest.ExpenseRepository)(nil)

type fakeNotifier struct {
	sent      []expense.Recorded
	deadlines []time.Time
	err       error
}

func (n *fakeNotifier) NotifyExpenseRecorded(ctx context.Context, payload expense.Recorded) error {
	if deadline, ok := ctx.Deadline(); ok {
		n.deadlines = append(n.deadlines, deadline)
	}
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, payload)
	return nil
}

type expenseFixture struct {
	store    *repotest.Store
	svc      *ExpenseService
	notifier *fakeNotifier
	food     *category.Category
	rent     *category.Category
	userID   int64
}

func date(y int, m time.Month, d int) *model.Date {
	v := model.NewDate(y, m, d)
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

// newExpenseFixture seeds four expenses:
//
//	food  2021-03-01  120.50
//	food  2021-03-15   18.86
//	food  2021-04-02  300.00
//	rent  2021-03-05 5500.00
func newExpenseFixture(t *testing.T) *expenseFixture {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()

	food, err := store.Categories().Create(ctx, "Food")
	require.NoError(t, err)
	rent, err := store.Categories().Create(ctx, "Rent")
	require.NoError(t, err)
	owner, err := store.Users().Create(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)

	rows := []struct {
		cat   int64
		date  *model.Date
		value string
	}{
		{food.ID, date(2021, time.March, 1), "120.50"},
		{food.ID, date(2021, time.March, 15), "18.86"},
		{food.ID, date(2021, time.April, 2), "300.00"},
		{rent.ID, date(2021, time.March, 5), "5500.00"},
	}
	for _, r := range rows {
		_, err := store.Expenses().Create(ctx, &expense.Expense{
			Value:    decimal.RequireFromString(r.value),
			Date:     *r.date,
			Category: category.Category{Base: model.Base{ID: r.cat}},
			UserID:   owner.ID,
		})
		require.NoError(t, err)
	}
	store.ResetCalls()

	notifier := &fakeNotifier{}
	return &expenseFixture{
		store:    store,
		svc:      NewExpenseService(store.Expenses(), store.Categories(), store.Users(), notifier),
		notifier: notifier,
		food:     food,
		rent:     rent,
		userID:   owner.ID,
	}
}

func TestExpenseService_SearchSelectsQuery(t *testing.T) {
	f := newExpenseFixture(t)
	march1, march31 := date(2021, time.March, 1), date(2021, time.March, 31)

	tests := []struct {
		name      string
		filter    expense.Filter
		wantCall  string
		wantTotal int64
	}{
		{
			name:      "category and dates",
			filter:    expense.Filter{CategoryID: &f.food.ID, StartDate: march1, EndDate: march31},
			wantCall:  "Expense.FindByCategoryAndDateBetween",
			wantTotal: 2,
		},
		{
			name:      "category only",
			filter:    expense.Filter{CategoryID: &f.food.ID},
			wantCall:  "Expense.FindByCategory",
			wantTotal: 3,
		},
		{
			name:      "dates only",
			filter:    expense.Filter{StartDate: march1, EndDate: march31},
			wantCall:  "Expense.FindByDateBetween",
			wantTotal: 3,
		},
		{
			name:      "no filter",
			filter:    expense.Filter{},
			wantCall:  "Expense.FindAll",
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.store.ResetCalls()

			page, err := f.svc.Search(context.Background(), tt.filter, model.PageQuery{})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantCall}, f.store.Calls)
			assert.Equal(t, tt.wantTotal, page.Total)
		})
	}
}

func TestExpenseService_TotalSelectsQuery(t *testing.T) {
	f := newExpenseFixture(t)
	march1, march31 := date(2021, time.March, 1), date(2021, time.March, 31)

	tests := []struct {
		name     string
		filter   expense.Filter
		wantCall string
		want     string
	}{
		{"category and dates", expense.Filter{CategoryID: &f.food.ID, StartDate: march1, EndDate: march31}, "Expense.SumByCategoryAndDateBetween", "139.36"},
		{"category only", expense.Filter{CategoryID: &f.food.ID}, "Expense.SumByCategory", "439.36"},
		{"dates only", expense.Filter{StartDate: march1, EndDate: march31}, "Expense.SumByDateBetween", "5639.36"},
		{"no filter", expense.Filter{}, "Expense.SumAll", "5939.36"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.store.ResetCalls()

			total, err := f.svc.Total(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Contains(t, f.store.Calls, tt.wantCall)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(total.Total), "got %s", total.Total)
		})
	}
}

func TestExpenseService_TotalNoMatchIsZero(t *testing.T) {
	f := newExpenseFixture(t)

	total, err := f.svc.Total(context.Background(), expense.Filter{
		StartDate: date(1999, time.January, 1),
		EndDate:   date(1999, time.December, 31),
	})
	require.NoError(t, err)
	assert.True(t, total.Total.IsZero())
}

func TestExpenseService_RejectsInvalidDateRange(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()
	later, earlier := date(2021, time.April, 1), date(2021, time.March, 1)

	filters := map[string]expense.Filter{
		"category and dates reversed": {CategoryID: &f.food.ID, StartDate: later, EndDate: earlier},
		"dates reversed":              {StartDate: later, EndDate: earlier},
		"start only":                  {StartDate: earlier},
		"end only with category":      {CategoryID: &f.food.ID, EndDate: later},
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			f.store.ResetCalls()

			_, err := f.svc.Search(ctx, filter, model.PageQuery{})
			assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidDateRange)

			_, err = f.svc.Total(ctx, filter)
			assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidDateRange)

			assert.Empty(t, f.store.Calls)
		})
	}
}

func TestExpenseService_SameDayRangeIsValid(t *testing.T) {
	f := newExpenseFixture(t)
	day := date(2021, time.March, 1)

	page, err := f.svc.Search(context.Background(), expense.Filter{StartDate: day, EndDate: day}, model.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestExpenseService_TotalUnknownCategory(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.Total(context.Background(), expense.Filter{CategoryID: int64Ptr(999)})
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)
}

func TestExpenseService_Create(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &expense.CreateExpensePayload{
		Value:      decimal.RequireFromString("42.10"),
		Date:       *date(2022, time.January, 10),
		CategoryID: f.rent.ID,
		UserID:     f.userID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rent", created.Category.Name)

	found, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.10").Equal(found.Value))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, created.ID, f.notifier.sent[0].ExpenseID)
	assert.Equal(t, "ana@example.com", f.notifier.sent[0].UserEmail)
	assert.Equal(t, "Rent", f.notifier.sent[0].Category)
}

func TestExpenseService_CreateErrors(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()
	valid := func() *expense.CreateExpensePayload {
		return &expense.CreateExpensePayload{
			Value:      decimal.NewFromInt(5),
			Date:       *date(2022, time.January, 10),
			CategoryID: f.food.ID,
			UserID:     f.userID,
		}
	}

	p := valid()
	p.CategoryID = 999
	_, err := f.svc.Create(ctx, p)
	assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)

	p = valid()
	p.UserID = 999
	_, err = f.svc.Create(ctx, p)
	assertHTTPError(t, err, http.StatusNotFound, CodeUserNotFound)

	for _, v := range []string{"0", "12.345", "10000000000"} {
		p = valid()
		p.Value = decimal.RequireFromString(v)
		_, err = f.svc.Create(ctx, p)
		assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidInput)
	}

	assert.Empty(t, f.notifier.sent)
}

func TestExpenseService_CreateSurvivesNotifierFailure(t *testing.T) {
	f := newExpenseFixture(t)
	f.notifier.err = errors.New("redis down")

	_, err := f.svc.Create(context.Background(), &expense.CreateExpensePayload{
		Value:      decimal.NewFromInt(5),
		Date:       *date(2022, time.January, 10),
		CategoryID: f.food.ID,
		UserID:     f.userID,
	})
	assert.NoError(t, err)
}

func TestExpenseService_CreateBoundsNotification(t *testing.T) {
	f := newExpenseFixture(t)

	start := time.Now()
	_, err := f.svc.Create(context.Background(), &expense.CreateExpensePayload{
		Value:      decimal.NewFromInt(5),
		Date:       *date(2022, time.January, 10),
		CategoryID: f.food.ID,
		UserID:     f.userID,
	})
	require.NoError(t, err)

	require.Len(t, f.notifier.deadlines, 1)
	assert.WithinDuration(t, start.Add(notifyTimeout), f.notifier.deadlines[0], time.Second)
}

func TestExpenseService_CreateWithoutNotifier(t *testing.T) {
	f := newExpenseFixture(t)
	svc := NewExpenseService(f.store.Expenses(), f.store.Categories(), f.store.Users(), nil)

	_, err := svc.Create(context.Background(), &expense.CreateExpensePayload{
		Value:      decimal.NewFromInt(5),
		Date:       *date(2022, time.January, 10),
		CategoryID: f.food.ID,
		UserID:     f.userID,
	})
	assert.NoError(t, err)
}

func TestExpenseService_PartialUpdate(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	original, err := f.svc.Create(ctx, &expense.CreateExpensePayload{
		Value:      decimal.RequireFromString("10.00"),
		Date:       *date(2022, time.January, 10),
		CategoryID: f.food.ID,
		UserID:     f.userID,
	})
	require.NoError(t, err)

	t.Run("value only", func(t *testing.T) {
		v := decimal.RequireFromString("15.25")
		updated, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{ID: original.ID, Value: &v})
		require.NoError(t, err)

		assert.True(t, v.Equal(updated.Value))
		assert.Equal(t, original.Date, updated.Date)
		assert.Equal(t, f.food.ID, updated.Category.ID)
	})

	t.Run("date and category", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{
			ID:         original.ID,
			Date:       date(2022, time.February, 1),
			CategoryID: &f.rent.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "2022-02-01", updated.Date.String())
		assert.Equal(t, "Rent", updated.Category.Name)
		assert.True(t, decimal.RequireFromString("15.25").Equal(updated.Value))
	})

	t.Run("empty payload keeps everything", func(t *testing.T) {
		before, err := f.svc.GetByID(ctx, original.ID)
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{ID: original.ID})
		require.NoError(t, err)
		assert.True(t, before.Value.Equal(updated.Value))
		assert.Equal(t, before.Date, updated.Date)
		assert.Equal(t, before.Category.ID, updated.Category.ID)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{ID: original.ID, CategoryID: int64Ptr(999)})
		assertHTTPError(t, err, http.StatusNotFound, CodeCategoryNotFound)
	})

	t.Run("unknown expense", func(t *testing.T) {
		_, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{ID: 999})
		assertHTTPError(t, err, http.StatusNotFound, CodeExpenseNotFound)
	})

	t.Run("value out of range", func(t *testing.T) {
		for _, raw := range []string{"12.345", "100000000000"} {
			v := decimal.RequireFromString(raw)
			_, err := f.svc.Update(ctx, &expense.UpdateExpensePayload{ID: original.ID, Value: &v})
			assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidInput)
		}

		current, err := f.svc.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("15.25").Equal(current.Value))
	})
}

// vanishingRefs fails every write with a foreign key violation on the
// given constraint, as when a referenced row is deleted concurrently.
type vanishingRefs struct {
	ExpenseRepository
	constraint string
}

func (r vanishingRefs) violation() error {
	return &pgconn.PgError{Code: "23503", TableName: "expenses", ConstraintName: r.constraint}
}

func (r vanishingRefs) Create(context.Context, *expense.Expense) (*expense.Expense, error) {
	return nil, r.violation()
}

func (r vanishingRefs) Update(context.Context, *expense.Expense) (*expense.Expense, error) {
	return nil, r.violation()
}

func TestExpenseService_WriteReportsVanishedReference(t *testing.T) {
	tests := []struct {
		constraint string
		status     int
		code       string
	}{
		{"expenses_user_id_fkey", http.StatusNotFound, CodeUserNotFound},
		{"expenses_category_id_fkey", http.StatusNotFound, CodeCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			f := newExpenseFixture(t)
			ctx := context.Background()
			existing, err := f.svc.Create(ctx, &expense.CreateExpensePayload{
				Value:      decimal.NewFromInt(5),
				Date:       *date(2022, time.January, 10),
				CategoryID: f.food.ID,
				UserID:     f.userID,
			})
			require.NoError(t, err)

			refs := vanishingRefs{ExpenseRepository: f.store.Expenses(), constraint: tt.constraint}
			svc := NewExpenseService(refs, f.store.Categories(), f.store.Users(), nil)

			_, err = svc.Create(ctx, &expense.CreateExpensePayload{
				Value:      decimal.NewFromInt(5),
				Date:       *date(2022, time.January, 10),
				CategoryID: f.food.ID,
				UserID:     f.userID,
			})
			assertHTTPError(t, err, tt.status, tt.code)

			v := decimal.NewFromInt(7)
			_, err = svc.Update(ctx, &expense.UpdateExpensePayload{ID: existing.ID, Value: &v})
			assertHTTPError(t, err, tt.status, tt.code)
		})
	}
}

func TestExpenseService_Delete(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	page, err := f.svc.Search(ctx, expense.Filter{}, model.PageQuery{})
	require.NoError(t, err)
	id := page.Items[0].ID

	require.NoError(t, f.svc.Delete(ctx, id))

	_, err = f.svc.GetByID(ctx, id)
	assertHTTPError(t, err, http.StatusNotFound, CodeExpenseNotFound)

	err = f.svc.Delete(ctx, id)
	assertHTTPError(t, err, http.StatusNotFound, CodeExpenseNotFound)
}

func TestExpenseService_ExportWalksPages(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	for i := 0; i < model.MaxPageSize+5; i++ {
		_, err := f.store.Expenses().Create(ctx, &expense.Expense{
			Value:    decimal.NewFromInt(int64(i + 1)),
			Date:     *date(2023, time.May, 1),
			Category: category.Category{Base: model.Base{ID: f.rent.ID}},
			UserID:   f.userID,
		})
		require.NoError(t, err)
	}
	f.store.ResetCalls()

	items, err := f.svc.Export(ctx, expense.Filter{CategoryID: &f.rent.ID})
	require.NoError(t, err)
	assert.Len(t, items, model.MaxPageSize+6)
	assert.Equal(t, []string{"Expense.FindByCategory", "Expense.FindByCategory"}, f.store.Calls)

	_, err = f.svc.Export(ctx, expense.Filter{StartDate: date(2023, time.May, 1)})
	assertHTTPError(t, err, http.StatusBadRequest, CodeInvalidDateRange)
}
