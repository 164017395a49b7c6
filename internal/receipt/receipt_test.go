package receipt

import (
	"os"
	"testing"
	"time"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSale() *upstream.Sale {
	return &upstream.Sale{
		ID:            uuid.New(),
		Number:        42,
		CashierName:   "Asha Mushi",
		PaymentMethod: "cash",
		Status:        "completed",
		Total:         decimal.NewFromInt(1000000),
		CreatedAt:     time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		Lines: []upstream.SaleLine{
			{
				ProductID:   uuid.New(),
				ProductName: "Mchele 5kg",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(500000),
				LineTotal:   decimal.NewFromInt(1000000),
			},
		},
	}
}

func TestProjectComputesEighteenPercentVAT(t *testing.T) {
	p := Project(sampleSale(), "Duka la Asha")

	assert.True(t, p.NetAmount.Equal(decimal.NewFromInt(1000000)), "net %s", p.NetAmount)
	assert.True(t, p.VATAmount.Equal(decimal.NewFromInt(180000)), "vat %s", p.VATAmount)
	assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(1180000)), "total %s", p.TotalAmount)
	assert.Equal(t, 42, p.Number)
	assert.Equal(t, "Duka la Asha", p.BusinessName)
}

func TestProjectRoundsVATToTwoPlaces(t *testing.T) {
	sale := sampleSale()
	sale.Total = decimal.RequireFromString("1234.56")

	p := Project(sale, "DukaPOS")
	// 1234.56 * 0.18 = 222.2208, displayed as 222.22
	assert.Equal(t, "222.22", p.VATAmount.StringFixed(2))
	assert.Equal(t, "1456.78", p.TotalAmount.StringFixed(2))
}

func TestHTMLIsSelfContainedDocument(t *testing.T) {
	page, err := HTML(Project(sampleSale(), "Duka la Asha"))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Duka la Asha")
	assert.Contains(t, html, "Mchele 5kg")
	assert.Contains(t, html, "VAT (18%)")
	assert.Contains(t, html, "TSh 1180000.00")
	assert.Contains(t, html, "Asha Mushi")
}

func TestTicketPDFWritesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := TicketPDF(Project(sampleSale(), "DukaPOS"), dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, path, "receipt_42")
}

func TestSalesWorkbookSheets(t *testing.T) {
	day1 := time.Date(2026, 8, 13, 9, 0, 0, 0, time.UTC)
	sales := []upstream.Sale{
		{Number: 1, Total: decimal.NewFromInt(5000), CreatedAt: day1, CashierName: "Asha"},
		{Number: 2, Total: decimal.NewFromInt(7000), CreatedAt: day1, CashierName: "Asha"},
		{Number: 3, Total: decimal.NewFromInt(3000), CreatedAt: day1.AddDate(0, 0, 1), CashierName: "Juma"},
	}

	f, err := SalesWorkbook(sales)
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t, []string{"Sales", "Daily Summary"}, f.GetSheetList())

	v, err := f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	// Two distinct days in the summary
	d1, _ := f.GetCellValue("Daily Summary", "A2")
	d2, _ := f.GetCellValue("Daily Summary", "A3")
	assert.Equal(t, "2026-08-13", d1)
	assert.Equal(t, "2026-08-14", d2)

	total, _ := f.GetCellValue("Daily Summary", "C2")
	assert.Equal(t, "12000", total)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "sales_report_2026-08-01_2026-08-14.xlsx", ReportFilename("2026-08-01", "2026-08-14"))
}
