package view

import (
	"context"
	"sort"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DailyRow is one row of the reports table: a day's sales and expenses with
// the derived net figure.
type DailyRow struct {
	Date          string          `json:"date"`
	SaleCount     int             `json:"sale_count"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
	ExpenseCount  int             `json:"expense_count"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Net           decimal.Decimal `json:"net"`
}

// ReportsView drives the reports screen (managers and superusers): a per-day
// summary derived from the sales and expense lists, plus the raw sales kept
// for the spreadsheet export.
type ReportsView struct {
	*machine
	client *upstream.Client

	branchID uuid.UUID
	sales    []upstream.Sale
	rows     []DailyRow
}

func NewReportsView(client *upstream.Client, branchID uuid.UUID) *ReportsView {
	return &ReportsView{machine: newMachine(), client: client, branchID: branchID}
}

func (v *ReportsView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		sales    []upstream.Sale
		expenses []upstream.Expense
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		sales, err = v.client.ListSales(gctx, v.branchID)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = v.client.ListExpenses(gctx, v.branchID)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.sales = sales
		v.rows = summarize(sales, expenses)
	})
}

func (v *ReportsView) Rows() []DailyRow {
	var out []DailyRow
	v.snapshot(func() { out = v.rows })
	return out
}

func (v *ReportsView) Sales() []upstream.Sale {
	var out []upstream.Sale
	v.snapshot(func() { out = v.sales })
	return out
}

func summarize(sales []upstream.Sale, expenses []upstream.Expense) []DailyRow {
	byDay := map[string]*DailyRow{}
	rowFor := func(day string) *DailyRow {
		r, ok := byDay[day]
		if !ok {
			r = &DailyRow{Date: day}
			byDay[day] = r
		}
		return r
	}

	for _, s := range sales {
		r := rowFor(s.CreatedAt.Format("2006-01-02"))
		r.SaleCount++
		r.SalesTotal = r.SalesTotal.Add(s.Total)
	}
	for _, e := range expenses {
		r := rowFor(e.Date.Format("2006-01-02"))
		r.ExpenseCount++
		r.ExpensesTotal = r.ExpensesTotal.Add(e.Amount)
	}

	rows := make([]DailyRow, 0, len(byDay))
	for _, r := range byDay {
		r.Net = r.SalesTotal.Sub(r.ExpensesTotal)
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}
