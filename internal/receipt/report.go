package receipt

import (
	"fmt"

	"dukapos/internal/upstream"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SalesWorkbook builds the downloadable sales report: one sheet with raw
// sales, one with a per-day summary. Returned as an excelize file the
// handler streams to the operator.
func SalesWorkbook(sales []upstream.Sale) (*excelize.File, error) {
	f := excelize.NewFile()

	const detail = "Sales"
	if err := f.SetSheetName("Sheet1", detail); err != nil {
		return nil, err
	}
	headers := []string{"Receipt No", "Date", "Cashier", "Payment Method", "Reference", "Status", "Total (TSh)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(detail, cell, h); err != nil {
			return nil, err
		}
	}

	type dayTotals struct {
		count int
		total decimal.Decimal
	}
	days := map[string]*dayTotals{}
	var order []string

	for i, s := range sales {
		row := i + 2
		day := s.CreatedAt.Format("2006-01-02")
		values := []interface{}{
			s.Number,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.CashierName,
			s.PaymentMethod,
			s.PaymentReference,
			s.Status,
			s.Total.InexactFloat64(),
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(detail, cell, val); err != nil {
				return nil, err
			}
		}
		d, ok := days[day]
		if !ok {
			d = &dayTotals{}
			days[day] = d
			order = append(order, day)
		}
		d.count++
		d.total = d.total.Add(s.Total)
	}

	const summary = "Daily Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}
	for i, h := range []string{"Date", "Sales", "Total (TSh)"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summary, cell, h); err != nil {
			return nil, err
		}
	}
	for i, day := range order {
		row := i + 2
		d := days[day]
		for col, val := range []interface{}{day, d.count, d.total.InexactFloat64()} {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(summary, cell, val); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ReportFilename names a sales export for download.
func ReportFilename(from, to string) string {
	return fmt.Sprintf("sales_report_%s_%s.xlsx", from, to)
}
