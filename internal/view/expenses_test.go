package view

import (
	"context"
	"testing"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseSubmitPostsOnceAndRefetches(t *testing.T) {
	api := newFakeAPI(t)
	catID := uuid.New()
	api.categories = []upstream.ExpenseCategory{{ID: catID, Name: "Transport", Active: true}}

	branchID := uuid.New()
	v := NewExpensesView(api.client, branchID)
	v.Load(context.Background())
	require.Equal(t, PhaseReady, v.Phase())

	err := v.Submit(context.Background(), upstream.ExpenseInput{
		CategoryID:  catID,
		Amount:      decimal.NewFromInt(25000),
		Description: "fuel for delivery bike",
		BranchID:    branchID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, api.count("POST", "/expenses"))
	assert.Equal(t, 2, api.count("GET", "/expenses"), "list is refreshed, not patched locally")

	expenses := v.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, "fuel for delivery bike", expenses[0].Description)
	assert.True(t, expenses[0].Amount.Equal(decimal.NewFromInt(25000)))
}

func TestExpenseSubmitValidatesFieldsBeforeNetwork(t *testing.T) {
	api := newFakeAPI(t)
	v := NewExpensesView(api.client, uuid.New())
	v.Load(context.Background())

	err := v.Submit(context.Background(), upstream.ExpenseInput{
		Amount: decimal.NewFromInt(-5),
	})
	require.Error(t, err)

	e := apierror.From(err)
	assert.Equal(t, apierror.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "category_id")
	assert.Contains(t, e.Fields, "amount")
	assert.Contains(t, e.Fields, "description")
	assert.Zero(t, api.count("POST", "/expenses"))
}

func TestExpenseCategoryRoundTrip(t *testing.T) {
	api := newFakeAPI(t)
	v := NewExpensesView(api.client, uuid.New())
	v.Load(context.Background())

	require.NoError(t, v.CreateCategory(context.Background(), upstream.ExpenseCategoryInput{Name: "Umeme", Active: true}))
	require.Len(t, v.Categories(), 1, "category comes back from the server exactly once")
	catID := v.Categories()[0].ID

	require.NoError(t, v.UpdateCategory(context.Background(), catID, upstream.ExpenseCategoryInput{Name: "Umeme na Maji", Active: true}))
	require.Len(t, v.Categories(), 1)
	assert.Equal(t, "Umeme na Maji", v.Categories()[0].Name)

	require.NoError(t, v.DeleteCategory(context.Background(), catID))
	assert.Empty(t, v.Categories())
}

func TestExpenseCategoryNameRequired(t *testing.T) {
	api := newFakeAPI(t)
	v := NewExpensesView(api.client, uuid.New())

	err := v.CreateCategory(context.Background(), upstream.ExpenseCategoryInput{})
	require.Error(t, err)
	assert.Zero(t, api.count("POST", "/expense-categories"))
}
