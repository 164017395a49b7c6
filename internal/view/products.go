package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProductsView drives the product catalog screen: branch-scoped list and the
// create/update forms. Quantities shown here are last-known copies; the
// central API mutates them through sales, batch receipts and transfers.
type ProductsView struct {
	*machine
	client *upstream.Client

	branchID uuid.UUID
	products []upstream.Product
	branches []upstream.Branch
}

func NewProductsView(client *upstream.Client, branchID uuid.UUID) *ProductsView {
	return &ProductsView{machine: newMachine(), client: client, branchID: branchID}
}

func (v *ProductsView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		products []upstream.Product
		branches []upstream.Branch
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		products, err = v.client.ListProducts(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		branches, err = v.client.ListBranches(gctx)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.products = products
		v.branches = branches
	})
}

func (v *ProductsView) Products() []upstream.Product {
	var out []upstream.Product
	v.snapshot(func() { out = v.products })
	return out
}

func (v *ProductsView) Branches() []upstream.Branch {
	var out []upstream.Branch
	v.snapshot(func() { out = v.branches })
	return out
}

func (v *ProductsView) Create(ctx context.Context, in upstream.ProductInput) error {
	if err := validateProductInput(in); err != nil {
		return err
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.CreateProduct(ctx, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *ProductsView) Update(ctx context.Context, id uuid.UUID, in upstream.ProductInput) error {
	if err := validateProductInput(in); err != nil {
		return err
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.UpdateProduct(ctx, id, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func validateProductInput(in upstream.ProductInput) error {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "required"
	}
	if in.Code == "" {
		fields["code"] = "required"
	}
	if !in.Price.IsPositive() {
		fields["price"] = "must be greater than zero"
	}
	if in.Price.LessThan(in.Cost) {
		fields["price"] = "must not be below cost"
	}
	if len(fields) > 0 {
		return apierror.FieldValidation(fields)
	}
	return nil
}
