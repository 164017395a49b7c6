package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
)

// ErrRefundUnavailable is the explicit refund stub: the central API exposes
// no refund endpoint yet, so the UI shows this notice instead of a dead
// button.
var ErrRefundUnavailable = apierror.Validation("refunds are not available from the terminal yet, contact head office")

// SalesView drives the sales history screen.
type SalesView struct {
	*machine
	client *upstream.Client

	branchID uuid.UUID
	sales    []upstream.Sale
}

func NewSalesView(client *upstream.Client, branchID uuid.UUID) *SalesView {
	return &SalesView{machine: newMachine(), client: client, branchID: branchID}
}

func (v *SalesView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	sales, err := v.client.ListSales(loadCtx, v.branchID)
	v.finishLoad(gen, err, func() { v.sales = sales })
}

func (v *SalesView) Sales() []upstream.Sale {
	var out []upstream.Sale
	v.snapshot(func() { out = v.sales })
	return out
}

// Refund is a stub by design: sales are immutable once created except for a
// server-side refund transition that is not yet reachable from here.
func (v *SalesView) Refund(_ context.Context, _ uuid.UUID) error {
	return ErrRefundUnavailable
}
