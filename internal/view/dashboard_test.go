package view

import (
	"context"
	"testing"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardUsesServerAggregates(t *testing.T) {
	api := newFakeAPI(t)
	api.stats = upstream.Stats{
		TotalSales: decimal.NewFromInt(750000),
		SaleCount:  12,
	}

	v := NewDashboardView(api.client, uuid.New())
	v.Load(context.Background())

	require.Equal(t, PhaseReady, v.Phase())
	assert.Equal(t, ModeServer, v.Mode())
	assert.Equal(t, 12, v.Stats().SaleCount)
	assert.True(t, v.Stats().TotalSales.Equal(decimal.NewFromInt(750000)))
}

func TestDashboardDegradedModeRecomputesLocally(t *testing.T) {
	api := newFakeAPI(t)
	api.statsErr = true
	api.sales = []upstream.Sale{
		{ID: uuid.New(), Total: decimal.NewFromInt(300000)},
		{ID: uuid.New(), Total: decimal.NewFromInt(450000)},
	}
	api.expenses = []upstream.Expense{
		{ID: uuid.New(), Amount: decimal.NewFromInt(50000)},
	}
	api.products = []upstream.Product{
		{ID: uuid.New(), Name: "Sukari", Quantity: 2, ReorderLevel: 5},
		{ID: uuid.New(), Name: "Unga", Quantity: 40, ReorderLevel: 5},
	}
	api.pending = []upstream.StockTransfer{{ID: uuid.New(), Status: upstream.TransferPending}}

	v := NewDashboardView(api.client, uuid.New())
	v.Load(context.Background())

	require.Equal(t, PhaseReady, v.Phase())
	assert.Equal(t, ModeDegraded, v.Mode(), "fallback figures must be labeled, never passed off as server aggregates")

	s := v.Stats()
	assert.True(t, s.TotalSales.Equal(decimal.NewFromInt(750000)))
	assert.Equal(t, 2, s.SaleCount)
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 1, s.ExpenseCount)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.PendingTransfers)
}

func TestDashboardRecoversToServerMode(t *testing.T) {
	api := newFakeAPI(t)
	api.statsErr = true

	v := NewDashboardView(api.client, uuid.New())
	v.Load(context.Background())
	require.Equal(t, ModeDegraded, v.Mode())

	api.mu.Lock()
	api.statsErr = false
	api.stats = upstream.Stats{SaleCount: 3}
	api.mu.Unlock()

	v.Load(context.Background())
	assert.Equal(t, ModeServer, v.Mode())
	assert.Equal(t, 3, v.Stats().SaleCount)
}

func TestStatsModeString(t *testing.T) {
	assert.Equal(t, "server", ModeServer.String())
	assert.Equal(t, "degraded", ModeDegraded.String())
}
