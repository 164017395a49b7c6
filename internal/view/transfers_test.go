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

func TestTransferSameSourceAndDestinationNeverReachesNetwork(t *testing.T) {
	api := newFakeAPI(t)
	v := NewTransfersView(api.client)
	v.Load(context.Background())
	require.Equal(t, PhaseReady, v.Phase())

	branch := uuid.New()
	err := v.Submit(context.Background(), upstream.TransferInput{
		ProductID:    uuid.New(),
		Quantity:     3,
		FromBranchID: branch,
		ToBranchID:   branch,
	})

	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.From(err).Kind)
	assert.Contains(t, err.Error(), "source and destination branch must differ")
	assert.Zero(t, api.count("POST", "/stock-transfers"))
}

func TestTransferQuantityAboveStockNamesAvailableAmount(t *testing.T) {
	api := newFakeAPI(t)
	productID := uuid.New()
	api.products = []upstream.Product{{
		ID:       productID,
		Name:     "Embe Juice",
		Price:    decimal.NewFromInt(1500),
		Quantity: 4,
	}}

	v := NewTransfersView(api.client)
	v.Load(context.Background())
	require.Equal(t, PhaseReady, v.Phase())

	err := v.Submit(context.Background(), upstream.TransferInput{
		ProductID:    productID,
		Quantity:     10,
		FromBranchID: uuid.New(),
		ToBranchID:   uuid.New(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Embe Juice")
	assert.Contains(t, err.Error(), "4 available")
	assert.Zero(t, api.count("POST", "/stock-transfers"))
}

func TestTransferSubmitReloadsFromServer(t *testing.T) {
	api := newFakeAPI(t)
	v := NewTransfersView(api.client)
	v.Load(context.Background())

	err := v.Submit(context.Background(), upstream.TransferInput{
		ProductID:    uuid.New(), // unknown products skip the stock check
		Quantity:     2,
		FromBranchID: uuid.New(),
		ToBranchID:   uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, api.count("POST", "/stock-transfers"))
	assert.Equal(t, 2, api.count("GET", "/stock-transfers"), "initial load plus post-submit refresh")
	require.Len(t, v.Transfers(), 1)
	assert.Equal(t, upstream.TransferPending, v.Transfers()[0].Status)
	assert.Len(t, v.Pending(), 1)
}

func TestTransferLoadIsAllOrNothing(t *testing.T) {
	api := newFakeAPI(t)
	api.transfers = []upstream.StockTransfer{{ID: uuid.New(), Status: upstream.TransferCompleted}}
	api.pendingErr = true

	v := NewTransfersView(api.client)
	v.Load(context.Background())

	// The history fetch succeeded but the pending fetch did not; no partial
	// data may be shown.
	assert.Equal(t, PhaseError, v.Phase())
	assert.Empty(t, v.Transfers())
	require.NotNil(t, v.Err())
	assert.Equal(t, "internal error", v.Err().Detail)

	// Manual retry after the server recovers
	api.mu.Lock()
	api.pendingErr = false
	api.mu.Unlock()
	v.Load(context.Background())
	assert.Equal(t, PhaseReady, v.Phase())
	assert.Len(t, v.Transfers(), 1)
	assert.Nil(t, v.Err())
}

func TestTransferRejectRequiresReason(t *testing.T) {
	api := newFakeAPI(t)
	v := NewTransfersView(api.client)

	err := v.Reject(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.From(err).Kind)
}
