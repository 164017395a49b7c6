// Package receipt builds the printable artifacts of the terminal: the
// receipt projection shown after checkout, a standalone HTML document for
// print, a thermal-ticket PDF for the spool, and spreadsheet report exports.
package receipt

import (
	"time"

	"dukapos/internal/upstream"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed 18% VAT displayed on receipts. This is a
// presentation-only figure computed client-side; the central API's totals
// remain authoritative.
var VATRate = decimal.New(18, -2)

// Projection is the receipt built from the sale response after checkout.
type Projection struct {
	BusinessName     string              `json:"business_name"`
	SaleID           string              `json:"sale_id"`
	Number           int                 `json:"number"`
	CashierName      string              `json:"cashier_name"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentReference string              `json:"payment_reference"`
	Lines            []upstream.SaleLine `json:"lines"`
	NetAmount        decimal.Decimal     `json:"net_amount"`
	VATAmount        decimal.Decimal     `json:"vat_amount"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	IssuedAt         time.Time           `json:"issued_at"`
}

// Project builds the receipt projection for a completed sale.
func Project(sale *upstream.Sale, businessName string) *Projection {
	vat := sale.Total.Mul(VATRate).Round(2)
	return &Projection{
		BusinessName:     businessName,
		SaleID:           sale.ID.String(),
		Number:           sale.Number,
		CashierName:      sale.CashierName,
		PaymentMethod:    sale.PaymentMethod,
		PaymentReference: sale.PaymentReference,
		Lines:            sale.Lines,
		NetAmount:        sale.Total,
		VATAmount:        vat,
		TotalAmount:      sale.Total.Add(vat),
		IssuedAt:         sale.CreatedAt,
	}
}
