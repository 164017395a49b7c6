package view

import (
	"context"
	"testing"
	"time"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(products ...upstream.Product) []upstream.Product { return products }

func TestCheckoutComputesVATOnReceipt(t *testing.T) {
	api := newFakeAPI(t)
	productID := uuid.New()
	api.products = catalogOf(upstream.Product{
		ID:       productID,
		Name:     "Mchele 5kg",
		Price:    decimal.NewFromInt(500000),
		Quantity: 20,
	})

	v := NewCheckoutView(api.client, uuid.New(), "Duka la Asha")
	v.Load(context.Background())
	require.Equal(t, PhaseReady, v.Phase())

	require.NoError(t, v.AddItem(productID, 2))
	assert.True(t, v.CartTotal().Equal(decimal.NewFromInt(1000000)))

	proj, err := v.Checkout(context.Background(), "cash", "")
	require.NoError(t, err)

	// 18% VAT presented on top of the net total
	assert.True(t, proj.NetAmount.Equal(decimal.NewFromInt(1000000)), "net %s", proj.NetAmount)
	assert.True(t, proj.VATAmount.Equal(decimal.NewFromInt(180000)), "vat %s", proj.VATAmount)
	assert.True(t, proj.TotalAmount.Equal(decimal.NewFromInt(1180000)), "total %s", proj.TotalAmount)
	assert.Equal(t, "Duka la Asha", proj.BusinessName)
}

func TestCheckoutClearsCartAndRefetchesCatalog(t *testing.T) {
	api := newFakeAPI(t)
	productID := uuid.New()
	api.products = catalogOf(upstream.Product{ID: productID, Name: "Soda", Price: decimal.NewFromInt(1000), Quantity: 50})

	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Load(context.Background())
	require.NoError(t, v.AddItem(productID, 3))

	_, err := v.Checkout(context.Background(), "cash", "")
	require.NoError(t, err)

	assert.Empty(t, v.Cart())
	assert.True(t, v.CartTotal().IsZero())
	assert.Equal(t, 2, api.count("GET", "/products"), "catalog re-fetched after the sale")

	rec, ok := v.LastReceipt()
	require.True(t, ok)
	assert.Equal(t, 1, rec.Number)
}

func TestCheckoutIsExactlyOneSalePerConfirmation(t *testing.T) {
	api := newFakeAPI(t)
	productID := uuid.New()
	api.products = catalogOf(upstream.Product{ID: productID, Name: "Soda", Price: decimal.NewFromInt(1000), Quantity: 50})
	api.saleGate = make(chan struct{})
	api.saleEntered = make(chan struct{})

	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Load(context.Background())
	require.NoError(t, v.AddItem(productID, 1))

	first := make(chan error, 1)
	go func() {
		_, err := v.Checkout(context.Background(), "cash", "")
		first <- err
	}()

	// Wait until the first confirmation is on the wire, then confirm again
	<-api.saleEntered
	_, err := v.Checkout(context.Background(), "cash", "")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(api.saleGate)
	require.NoError(t, <-first)
	assert.Equal(t, 1, api.count("POST", "/sales"))
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	api := newFakeAPI(t)
	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Load(context.Background())

	_, err := v.Checkout(context.Background(), "cash", "")
	require.Error(t, err)
	assert.Zero(t, api.count("POST", "/sales"))
}

func TestCartMergesLinesAndRemovesAtZero(t *testing.T) {
	api := newFakeAPI(t)
	productID := uuid.New()
	api.products = catalogOf(upstream.Product{ID: productID, Name: "Soda", Price: decimal.NewFromInt(1000), Quantity: 50})

	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Load(context.Background())

	require.NoError(t, v.AddItem(productID, 2))
	require.NoError(t, v.AddItem(productID, 3))
	require.Len(t, v.Cart(), 1)
	assert.Equal(t, 5, v.Cart()[0].Quantity)

	require.NoError(t, v.SetQuantity(productID, 0))
	assert.Empty(t, v.Cart())
}

func TestCartRejectsUnknownProduct(t *testing.T) {
	api := newFakeAPI(t)
	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Load(context.Background())

	err := v.AddItem(uuid.New(), 1)
	assert.Error(t, err)
}

func TestCheckoutDiscardsResultsAfterClose(t *testing.T) {
	api := newFakeAPI(t)
	v := NewCheckoutView(api.client, uuid.New(), "DukaPOS")
	v.Close()

	done := make(chan struct{})
	go func() {
		v.Load(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after close")
	}
	assert.NotEqual(t, PhaseReady, v.Phase(), "a closed view never becomes ready")
	assert.Zero(t, api.count("POST", "/sales"))
}
