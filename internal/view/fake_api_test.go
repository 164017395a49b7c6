package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type tokenStub struct{}

func (tokenStub) Token() string { return "test-token" }

// fakeAPI is an in-memory stand-in for the central DukaPOS API speaking its
// canonical {"data": ...} / {"message": ...} envelope.
type fakeAPI struct {
	mu sync.Mutex

	srv    *httptest.Server
	client *upstream.Client

	products   []upstream.Product
	expenses   []upstream.Expense
	categories []upstream.ExpenseCategory
	transfers  []upstream.StockTransfer
	pending    []upstream.StockTransfer
	sales      []upstream.Sale
	stats      upstream.Stats

	statsErr   bool
	pendingErr bool

	// saleGate, when set, blocks POST /sales until released; saleEntered is
	// closed once the handler is inside.
	saleGate    chan struct{}
	saleEntered chan struct{}

	calls map[string]int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{calls: map[string]int{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	f.client = upstream.NewClient(f.srv.URL, 5*time.Second, tokenStub{})
	return f
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func writeData(w http.ResponseWriter, v interface{}) {
	json.NewEncoder(w).Encode(map[string]interface{}{"data": v})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	switch {
	case key == "GET /products":
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.products)

	case key == "GET /expenses":
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.expenses)

	case key == "POST /expenses":
		var in upstream.ExpenseInput
		json.NewDecoder(r.Body).Decode(&in)
		exp := upstream.Expense{
			ID:          uuid.New(),
			CategoryID:  in.CategoryID,
			Amount:      in.Amount,
			Description: in.Description,
			Date:        time.Now(),
			BranchID:    in.BranchID,
		}
		f.mu.Lock()
		f.expenses = append(f.expenses, exp)
		f.mu.Unlock()
		writeData(w, exp)

	case key == "GET /expense-categories":
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.categories)

	case key == "POST /expense-categories":
		var in upstream.ExpenseCategoryInput
		json.NewDecoder(r.Body).Decode(&in)
		cat := upstream.ExpenseCategory{ID: uuid.New(), Name: in.Name, Description: in.Description, Active: in.Active}
		f.mu.Lock()
		f.categories = append(f.categories, cat)
		f.mu.Unlock()
		writeData(w, cat)

	case r.Method == "PUT" && strings.HasPrefix(r.URL.Path, "/expense-categories/"):
		var in upstream.ExpenseCategoryInput
		json.NewDecoder(r.Body).Decode(&in)
		id := strings.TrimPrefix(r.URL.Path, "/expense-categories/")
		f.mu.Lock()
		for i := range f.categories {
			if f.categories[i].ID.String() == id {
				f.categories[i].Name = in.Name
				f.categories[i].Active = in.Active
			}
		}
		f.mu.Unlock()
		writeData(w, map[string]string{"id": id})

	case r.Method == "DELETE" && strings.HasPrefix(r.URL.Path, "/expense-categories/"):
		id := strings.TrimPrefix(r.URL.Path, "/expense-categories/")
		f.mu.Lock()
		kept := f.categories[:0]
		for _, c := range f.categories {
			if c.ID.String() != id {
				kept = append(kept, c)
			}
		}
		f.categories = kept
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	case key == "GET /stock-transfers":
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.transfers)

	case key == "GET /stock-transfers/pending":
		f.mu.Lock()
		broken := f.pendingErr
		pending := f.pending
		f.mu.Unlock()
		if broken {
			writeMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeData(w, pending)

	case key == "POST /stock-transfers":
		var in upstream.TransferInput
		json.NewDecoder(r.Body).Decode(&in)
		tr := upstream.StockTransfer{
			ID:           uuid.New(),
			ProductID:    in.ProductID,
			Quantity:     in.Quantity,
			FromBranchID: in.FromBranchID,
			ToBranchID:   in.ToBranchID,
			Status:       upstream.TransferPending,
			CreatedAt:    time.Now(),
		}
		f.mu.Lock()
		f.transfers = append(f.transfers, tr)
		f.pending = append(f.pending, tr)
		f.mu.Unlock()
		writeData(w, tr)

	case key == "GET /sales":
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, f.sales)

	case key == "POST /sales":
		f.mu.Lock()
		gate, entered := f.saleGate, f.saleEntered
		f.mu.Unlock()
		if entered != nil {
			close(entered)
		}
		if gate != nil {
			<-gate
		}

		var in upstream.SaleInput
		json.NewDecoder(r.Body).Decode(&in)
		sale := upstream.Sale{
			ID:            uuid.New(),
			Number:        1,
			PaymentMethod: in.PaymentMethod,
			BranchID:      in.BranchID,
			Status:        "completed",
			CreatedAt:     time.Now(),
		}
		for _, l := range in.Lines {
			lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
			sale.Lines = append(sale.Lines, upstream.SaleLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				LineTotal: lineTotal,
			})
			sale.Total = sale.Total.Add(lineTotal)
		}
		f.mu.Lock()
		sale.Number = len(f.sales) + 1
		f.sales = append(f.sales, sale)
		f.mu.Unlock()
		writeData(w, sale)

	case key == "GET /statistics/dashboard":
		f.mu.Lock()
		broken := f.statsErr
		stats := f.stats
		f.mu.Unlock()
		if broken {
			writeMessage(w, http.StatusInternalServerError, "statistics unavailable")
			return
		}
		writeData(w, stats)

	default:
		writeMessage(w, http.StatusNotFound, "not found")
	}
}
