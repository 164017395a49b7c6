package upstream

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire types for the central DukaPOS API. One normalized type per endpoint:
// the decoder in client.go maps every payload onto exactly one of these and
// reports a parse error when the shape does not fit.

// Identity describes the authenticated operator as issued at login.
type Identity struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	BranchID   uuid.UUID `json:"branch_id"`
	BranchName string    `json:"branch_name"`
}

// LoginResult is returned by POST /auth/login and /auth/refresh.
type LoginResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

type Branch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Contact   string    `json:"contact"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// User approval lifecycle: created pending, then approved or rejected by a
// superuser, editable thereafter.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	BranchID   uuid.UUID `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	Status     string    `json:"status"` // pending | approved | rejected
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	BranchID     uuid.UUID       `json:"branch_id"`
}

type BatchLine struct {
	ProductID   uuid.UUID  `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// Batch is read-only from the terminal's perspective: deliveries and their
// loan accounting are managed centrally.
type Batch struct {
	ID           uuid.UUID       `json:"id"`
	Supplier     string          `json:"supplier"`
	DeliveryDate time.Time       `json:"delivery_date"`
	LoanTotal    decimal.Decimal `json:"loan_total"`
	LoanPaid     decimal.Decimal `json:"loan_paid"`
	Lines        []BatchLine     `json:"lines"`
}

// BatchStats is returned by GET /batches/statistics.
type BatchStats struct {
	BatchCount      int             `json:"batch_count"`
	OutstandingLoan decimal.Decimal `json:"outstanding_loan"`
	ExpiringSoon    int             `json:"expiring_soon"`
}

type SaleLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Sale struct {
	ID               uuid.UUID       `json:"id"`
	Number           int             `json:"number"`
	Lines            []SaleLine      `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	CashierID        uuid.UUID       `json:"cashier_id"`
	CashierName      string          `json:"cashier_name"`
	BranchID         uuid.UUID       `json:"branch_id"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Expense struct {
	ID            uuid.UUID       `json:"id"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	ReceiptNumber string          `json:"receipt_number"`
	PaymentMethod string          `json:"payment_method"`
	BranchID      uuid.UUID       `json:"branch_id"`
	CreatedBy     string          `json:"created_by"`
}

type ExpenseCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
}

// Stock transfer statuses as reported by the central API. The
// pending → approved|rejected transition is performed entirely server-side;
// the terminal only displays status and issues approve/reject calls.
const (
	TransferPending   = "pending"
	TransferApproved  = "approved"
	TransferRejected  = "rejected"
	TransferCompleted = "completed"
)

type StockTransfer struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	FromBranchID    uuid.UUID `json:"from_branch_id"`
	FromBranchName  string    `json:"from_branch_name"`
	ToBranchID      uuid.UUID `json:"to_branch_id"`
	ToBranchName    string    `json:"to_branch_name"`
	RequestedBy     string    `json:"requested_by"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason"`
	CreatedAt       time.Time `json:"created_at"`
}

// Stats carries the pre-computed dashboard aggregates for the caller's role
// and branch scope.
type Stats struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	SaleCount        int             `json:"sale_count"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	ExpenseCount     int             `json:"expense_count"`
	LowStockCount    int             `json:"low_stock_count"`
	PendingTransfers int             `json:"pending_transfers"`
}

// ─── Mutation inputs ─────────────────────────────────────────────────────────

type BranchInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Active   bool   `json:"active"`
}

type UserUpdateInput struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	BranchID uuid.UUID `json:"branch_id"`
}

type ProductInput struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	BranchID     uuid.UUID       `json:"branch_id"`
}

type SaleLineInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type SaleInput struct {
	Lines            []SaleLineInput `json:"lines"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	BranchID         uuid.UUID       `json:"branch_id"`
}

type ExpenseInput struct {
	CategoryID    uuid.UUID       `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          string          `json:"date"` // YYYY-MM-DD
	ReceiptNumber string          `json:"receipt_number"`
	PaymentMethod string          `json:"payment_method"`
	BranchID      uuid.UUID       `json:"branch_id"`
}

type ExpenseCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type TransferInput struct {
	ProductID    uuid.UUID `json:"product_id"`
	Quantity     int       `json:"quantity"`
	FromBranchID uuid.UUID `json:"from_branch_id"`
	ToBranchID   uuid.UUID `json:"to_branch_id"`
}
