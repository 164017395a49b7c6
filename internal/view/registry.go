package view

import (
	"sync"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
)

// Registry owns the live view modules for the signed-in operator. Modules are
// built lazily on first use and torn down together on Reset; a login or
// logout must never leave a previous operator's state behind.
type Registry struct {
	mu       sync.Mutex
	client   *upstream.Client
	business string

	dashboard *DashboardView
	products  *ProductsView
	sales     *SalesView
	expenses  *ExpensesView
	reports   *ReportsView
	checkout  *CheckoutView
	transfers *TransfersView
	users     *UsersView
	branches  *BranchesView
	batches   *BatchesView
}

func NewRegistry(client *upstream.Client, businessName string) *Registry {
	return &Registry{client: client, business: businessName}
}

// Reset closes every live module and drops it. Called on login and logout.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dashboard != nil {
		r.dashboard.Close()
	}
	if r.products != nil {
		r.products.Close()
	}
	if r.sales != nil {
		r.sales.Close()
	}
	if r.expenses != nil {
		r.expenses.Close()
	}
	if r.reports != nil {
		r.reports.Close()
	}
	if r.checkout != nil {
		r.checkout.Close()
	}
	if r.transfers != nil {
		r.transfers.Close()
	}
	if r.users != nil {
		r.users.Close()
	}
	if r.branches != nil {
		r.branches.Close()
	}
	if r.batches != nil {
		r.batches.Close()
	}
	r.dashboard, r.products, r.sales, r.expenses, r.reports = nil, nil, nil, nil, nil
	r.checkout, r.transfers, r.users, r.branches, r.batches = nil, nil, nil, nil, nil
}

func (r *Registry) Dashboard(branchID uuid.UUID) *DashboardView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dashboard == nil {
		r.dashboard = NewDashboardView(r.client, branchID)
	}
	return r.dashboard
}

func (r *Registry) Products(branchID uuid.UUID) *ProductsView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.products == nil {
		r.products = NewProductsView(r.client, branchID)
	}
	return r.products
}

func (r *Registry) Sales(branchID uuid.UUID) *SalesView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sales == nil {
		r.sales = NewSalesView(r.client, branchID)
	}
	return r.sales
}

func (r *Registry) Expenses(branchID uuid.UUID) *ExpensesView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.expenses == nil {
		r.expenses = NewExpensesView(r.client, branchID)
	}
	return r.expenses
}

func (r *Registry) Reports(branchID uuid.UUID) *ReportsView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reports == nil {
		r.reports = NewReportsView(r.client, branchID)
	}
	return r.reports
}

func (r *Registry) Checkout(branchID uuid.UUID) *CheckoutView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.checkout == nil {
		r.checkout = NewCheckoutView(r.client, branchID, r.business)
	}
	return r.checkout
}

func (r *Registry) Transfers() *TransfersView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transfers == nil {
		r.transfers = NewTransfersView(r.client)
	}
	return r.transfers
}

func (r *Registry) Users() *UsersView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users == nil {
		r.users = NewUsersView(r.client)
	}
	return r.users
}

func (r *Registry) Branches() *BranchesView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.branches == nil {
		r.branches = NewBranchesView(r.client)
	}
	return r.branches
}

func (r *Registry) Batches() *BatchesView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batches == nil {
		r.batches = NewBatchesView(r.client)
	}
	return r.batches
}
