package view

import (
	"context"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// StatsMode labels where the dashboard figures came from, so recomputed
// numbers are never passed off as server aggregates.
type StatsMode int

const (
	// ModeServer: figures are the central API's pre-computed aggregates.
	ModeServer StatsMode = iota
	// ModeDegraded: the statistics endpoint failed and the figures were
	// recomputed locally from the list endpoints.
	ModeDegraded
)

func (m StatsMode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}
	return "server"
}

// DashboardView drives the role dashboards. It prefers the server statistics
// endpoint; when that fails it falls back to an explicit degraded mode that
// recomputes the figures from the list endpoints.
type DashboardView struct {
	*machine
	client   *upstream.Client
	branchID uuid.UUID

	stats upstream.Stats
	mode  StatsMode
}

// NewDashboardView scopes the figures to a branch; uuid.Nil means all
// branches (superuser).
func NewDashboardView(client *upstream.Client, branchID uuid.UUID) *DashboardView {
	return &DashboardView{machine: newMachine(), client: client, branchID: branchID}
}

func (v *DashboardView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	if stats, err := v.client.DashboardStatistics(loadCtx, v.branchID); err == nil {
		v.finishLoad(gen, nil, func() {
			v.stats = *stats
			v.mode = ModeServer
		})
		return
	} else {
		log.Warn().Err(err).Msg("statistics endpoint failed, recomputing dashboard locally")
	}

	// Degraded path: recompute from the list endpoints.
	var (
		sales    []upstream.Sale
		expenses []upstream.Expense
		products []upstream.Product
		pending  []upstream.StockTransfer
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		sales, err = v.client.ListSales(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = v.client.ListExpenses(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		products, err = v.client.ListProducts(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		pending, err = v.client.ListPendingTransfers(gctx)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.stats = recompute(sales, expenses, products, pending)
		v.mode = ModeDegraded
	})
}

func (v *DashboardView) Stats() upstream.Stats {
	var out upstream.Stats
	v.snapshot(func() { out = v.stats })
	return out
}

// Mode reports which path produced the current figures.
func (v *DashboardView) Mode() StatsMode {
	var out StatsMode
	v.snapshot(func() { out = v.mode })
	return out
}

// recompute derives the dashboard aggregates from raw collections: the
// sum/filter/group the server would have done.
func recompute(sales []upstream.Sale, expenses []upstream.Expense, products []upstream.Product, pending []upstream.StockTransfer) upstream.Stats {
	var s upstream.Stats
	for _, sale := range sales {
		s.TotalSales = s.TotalSales.Add(sale.Total)
		s.SaleCount++
	}
	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		s.ExpenseCount++
	}
	for _, p := range products {
		if p.Quantity <= p.ReorderLevel {
			s.LowStockCount++
		}
	}
	s.PendingTransfers = len(pending)
	return s
}
