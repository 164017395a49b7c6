package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TransfersView drives the inter-branch stock transfer screen: the full
// transfer history, the pending queue awaiting approval, and the request
// form. The pending → approved|rejected transition is performed entirely by
// the central API; the checks here are advisory UX only.
type TransfersView struct {
	*machine
	client *upstream.Client

	transfers []upstream.StockTransfer
	pending   []upstream.StockTransfer
	products  []upstream.Product
}

func NewTransfersView(client *upstream.Client) *TransfersView {
	return &TransfersView{machine: newMachine(), client: client}
}

// Load fetches the transfer history, the pending queue and the product
// catalog concurrently and joins them. Any failure puts the whole view in
// error; partial data is never rendered until a retry succeeds.
func (v *TransfersView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		transfers, pending []upstream.StockTransfer
		products           []upstream.Product
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		transfers, err = v.client.ListTransfers(gctx)
		return err
	})
	g.Go(func() (err error) {
		pending, err = v.client.ListPendingTransfers(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = v.client.ListProducts(gctx, uuid.Nil)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.transfers = transfers
		v.pending = pending
		v.products = products
	})
}

func (v *TransfersView) Transfers() []upstream.StockTransfer {
	var out []upstream.StockTransfer
	v.snapshot(func() { out = v.transfers })
	return out
}

func (v *TransfersView) Pending() []upstream.StockTransfer {
	var out []upstream.StockTransfer
	v.snapshot(func() { out = v.pending })
	return out
}

func (v *TransfersView) Products() []upstream.Product {
	var out []upstream.Product
	v.snapshot(func() { out = v.products })
	return out
}

// Submit requests a new transfer. Two advisory checks run before any network
// call: source must differ from destination, and the requested quantity must
// not exceed the last-known stock of the product. Final validation is
// server-side.
func (v *TransfersView) Submit(ctx context.Context, in upstream.TransferInput) error {
	if in.Quantity <= 0 {
		return apierror.Validation("quantity must be at least 1")
	}
	if in.FromBranchID == in.ToBranchID {
		return apierror.Validation("source and destination branch must differ")
	}
	if p, ok := v.productByID(in.ProductID); ok && in.Quantity > p.Quantity {
		return apierror.Validation("requested quantity %d exceeds stock of %s (%d available)",
			in.Quantity, p.Name, p.Quantity)
	}

	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.CreateTransfer(ctx, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// Approve moves a pending transfer to approved via the central API.
func (v *TransfersView) Approve(ctx context.Context, id uuid.UUID) error {
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if err := v.client.ApproveTransfer(ctx, id); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// Reject moves a pending transfer to rejected, with a reason.
func (v *TransfersView) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	if reason == "" {
		return apierror.Validation("a rejection reason is required")
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if err := v.client.RejectTransfer(ctx, id, reason); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *TransfersView) productByID(id uuid.UUID) (upstream.Product, bool) {
	var (
		p  upstream.Product
		ok bool
	)
	v.snapshot(func() {
		for _, cand := range v.products {
			if cand.ID == id {
				p, ok = cand, true
				return
			}
		}
	})
	return p, ok
}
