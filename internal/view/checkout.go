package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/receipt"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in the in-memory cart with its derived line total.
type CartLine struct {
	Product  upstream.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CheckoutView drives the sale checkout screen: product picker, in-memory
// cart, and the checkout call. The cart exists only until checkout
// confirmation; on success it is cleared and a receipt projection is built
// from the response.
type CheckoutView struct {
	*machine
	client       *upstream.Client
	businessName string
	branchID     uuid.UUID

	products    []upstream.Product
	cart        []CartLine
	lastReceipt *receipt.Projection
}

func NewCheckoutView(client *upstream.Client, branchID uuid.UUID, businessName string) *CheckoutView {
	return &CheckoutView{machine: newMachine(), client: client, branchID: branchID, businessName: businessName}
}

// Load fetches the branch catalog for the product picker.
func (v *CheckoutView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	products, err := v.client.ListProducts(loadCtx, v.branchID)
	v.finishLoad(gen, err, func() { v.products = products })
}

func (v *CheckoutView) Products() []upstream.Product {
	var out []upstream.Product
	v.snapshot(func() { out = v.products })
	return out
}

// AddItem puts quantity units of a catalog product into the cart, merging
// with an existing line for the same product.
func (v *CheckoutView) AddItem(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return apierror.Validation("quantity must be at least 1")
	}
	var err *apierror.Error
	v.snapshot(func() {
		var product *upstream.Product
		for i := range v.products {
			if v.products[i].ID == productID {
				product = &v.products[i]
				break
			}
		}
		if product == nil {
			err = apierror.Validation("product is not in the loaded catalog")
			return
		}
		for i := range v.cart {
			if v.cart[i].Product.ID == productID {
				v.cart[i].Quantity += quantity
				return
			}
		}
		v.cart = append(v.cart, CartLine{Product: *product, Quantity: quantity})
	})
	if err != nil {
		return err
	}
	return nil
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (v *CheckoutView) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return apierror.Validation("quantity cannot be negative")
	}
	var err *apierror.Error
	v.snapshot(func() {
		for i := range v.cart {
			if v.cart[i].Product.ID == productID {
				if quantity == 0 {
					v.cart = append(v.cart[:i], v.cart[i+1:]...)
				} else {
					v.cart[i].Quantity = quantity
				}
				return
			}
		}
		err = apierror.Validation("product is not in the cart")
	})
	if err != nil {
		return err
	}
	return nil
}

func (v *CheckoutView) ClearCart() {
	v.snapshot(func() { v.cart = nil })
}

func (v *CheckoutView) Cart() []CartLine {
	var out []CartLine
	v.snapshot(func() { out = append([]CartLine(nil), v.cart...) })
	return out
}

// CartTotal is the derived net total of all lines.
func (v *CheckoutView) CartTotal() decimal.Decimal {
	total := decimal.Zero
	v.snapshot(func() {
		for _, l := range v.cart {
			total = total.Add(l.LineTotal())
		}
	})
	return total
}

// LastReceipt returns the projection from the most recent successful
// checkout, if any.
func (v *CheckoutView) LastReceipt() (*receipt.Projection, bool) {
	var p *receipt.Projection
	v.snapshot(func() { p = v.lastReceipt })
	return p, p != nil
}

// Checkout submits the cart as one sale. On success the cart is cleared, a
// receipt projection is built from the response, and the catalog is
// re-fetched so quantities come from the source of truth.
func (v *CheckoutView) Checkout(ctx context.Context, paymentMethod, paymentReference string) (*receipt.Projection, error) {
	lines := v.Cart()
	if len(lines) == 0 {
		return nil, apierror.Validation("cart is empty")
	}
	if paymentMethod == "" {
		return nil, apierror.Validation("payment method is required")
	}

	if err := v.beginSubmit(); err != nil {
		return nil, err
	}
	defer v.endSubmit()

	in := upstream.SaleInput{
		PaymentMethod:    paymentMethod,
		PaymentReference: paymentReference,
		BranchID:         v.branchID,
	}
	for _, l := range lines {
		in.Lines = append(in.Lines, upstream.SaleLineInput{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}

	sale, err := v.client.CreateSale(ctx, in)
	if err != nil {
		return nil, err
	}

	proj := receipt.Project(sale, v.businessName)
	v.snapshot(func() {
		v.cart = nil
		v.lastReceipt = proj
	})
	v.Load(ctx)
	return proj, nil
}
