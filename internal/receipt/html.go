package receipt

import (
	"bytes"
	"html/template"
)

// The printable receipt is one self-contained HTML document with an embedded
// fixed layout, opened in a new viewing context for print or offered as a
// download. It is a presentation artifact, not a data interchange format.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt #{{.Number}}</title>
<style>
  body { font-family: "Courier New", monospace; width: 280px; margin: 0 auto; font-size: 12px; }
  h1 { font-size: 16px; text-align: center; margin: 8px 0 2px; }
  .sub { text-align: center; margin: 0 0 8px; }
  hr { border: none; border-top: 1px dashed #000; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 1px 0; }
  .qty { text-align: center; width: 15%; }
  .amt { text-align: right; width: 30%; }
  .total td { font-weight: bold; border-top: 1px solid #000; }
  .foot { text-align: center; margin-top: 10px; font-style: italic; }
  @media print { body { width: auto; } }
</style>
</head>
<body>
<h1>{{.BusinessName}}</h1>
<p class="sub">Sales Receipt</p>
<p>Receipt No: {{.Number}}<br>
Date: {{.IssuedAt.Format "02/01/2006 15:04"}}<br>
Cashier: {{.CashierName}}</p>
<hr>
<table>
{{range .Lines}}
  <tr>
    <td>{{.ProductName}}</td>
    <td class="qty">x{{.Quantity}}</td>
    <td class="amt">{{.LineTotal.StringFixed 2}}</td>
  </tr>
{{end}}
  <tr><td colspan="2">Subtotal</td><td class="amt">{{.NetAmount.StringFixed 2}}</td></tr>
  <tr><td colspan="2">VAT (18%)</td><td class="amt">{{.VATAmount.StringFixed 2}}</td></tr>
  <tr class="total"><td colspan="2">TOTAL</td><td class="amt">TSh {{.TotalAmount.StringFixed 2}}</td></tr>
  <tr><td colspan="2">Paid via {{.PaymentMethod}}</td><td class="amt">{{if .PaymentReference}}{{.PaymentReference}}{{end}}</td></tr>
</table>
<p class="foot">Thank you for shopping with us!</p>
</body>
</html>
`))

// HTML renders the projection as a standalone printable document.
func HTML(p *Projection) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
