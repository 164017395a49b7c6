package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ExpensesView drives the expense list, the expense form and expense
// category management.
type ExpensesView struct {
	*machine
	client *upstream.Client

	branchID   uuid.UUID
	expenses   []upstream.Expense
	categories []upstream.ExpenseCategory
}

// NewExpensesView scopes the list to the operator's branch; uuid.Nil means
// all branches (superuser).
func NewExpensesView(client *upstream.Client, branchID uuid.UUID) *ExpensesView {
	return &ExpensesView{machine: newMachine(), client: client, branchID: branchID}
}

func (v *ExpensesView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		expenses   []upstream.Expense
		categories []upstream.ExpenseCategory
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		expenses, err = v.client.ListExpenses(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		categories, err = v.client.ListExpenseCategories(gctx)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.expenses = expenses
		v.categories = categories
	})
}

func (v *ExpensesView) Expenses() []upstream.Expense {
	var out []upstream.Expense
	v.snapshot(func() { out = v.expenses })
	return out
}

func (v *ExpensesView) Categories() []upstream.ExpenseCategory {
	var out []upstream.ExpenseCategory
	v.snapshot(func() { out = v.categories })
	return out
}

// Submit records one expense. Field checks run before the network call; on
// success the list is refreshed from the central API so the new record comes
// from the source of truth.
func (v *ExpensesView) Submit(ctx context.Context, in upstream.ExpenseInput) error {
	fields := map[string]string{}
	if in.CategoryID == uuid.Nil {
		fields["category_id"] = "required"
	}
	if !in.Amount.IsPositive() {
		fields["amount"] = "must be greater than zero"
	}
	if in.Description == "" {
		fields["description"] = "required"
	}
	if len(fields) > 0 {
		return apierror.FieldValidation(fields)
	}

	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.CreateExpense(ctx, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *ExpensesView) CreateCategory(ctx context.Context, in upstream.ExpenseCategoryInput) error {
	if in.Name == "" {
		return apierror.Validation("category name is required")
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.CreateExpenseCategory(ctx, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// UpdateCategory renames a category and/or toggles its active flag.
func (v *ExpensesView) UpdateCategory(ctx context.Context, id uuid.UUID, in upstream.ExpenseCategoryInput) error {
	if in.Name == "" {
		return apierror.Validation("category name is required")
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.UpdateExpenseCategory(ctx, id, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *ExpensesView) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if err := v.client.DeleteExpenseCategory(ctx, id); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}
