// Package upstream is the typed client for the central DukaPOS REST API.
// The terminal owns no business data: every entity is fetched from here,
// displayed, and re-fetched after a mutation. All failures are normalized to
// *apierror.Error so callers always have a displayable message.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dukapos/internal/apierror"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token injected into every call.
// An empty token means the call goes out unauthenticated (login, refresh).
type TokenSource interface {
	Token() string
}

// Client talks to the central API. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	breaker *Breaker
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		breaker: NewBreaker(DefaultBreakerSettings()),
	}
}

// BreakerState exposes the circuit state for the health endpoint.
func (c *Client) BreakerState() BreakerState { return c.breaker.State() }

// envelope is the single canonical response shape of the central API:
// {"data": ...} on success, {"message": "..."} on failure. Anything else is
// a parse error; the gateway does not probe alternate shapes.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	if ok, retryIn := c.breaker.Allow(); !ok {
		return apierror.Transport("central API unavailable, retry in %s", retryIn.Round(time.Second))
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apierror.Parse("%s %s: encode request: %v", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return apierror.Transport("%s %s: build request: %v", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return apierror.Transport("central API unreachable: %v", err)
	}
	defer resp.Body.Close()
	c.breaker.RecordSuccess()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return apierror.Transport("%s %s: read response: %v", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return apierror.Upstream("%s", env.Message)
		}
		return apierror.Upstream("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		return apierror.Parse("%s %s: unexpected response shape", method, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apierror.Parse("%s %s: decode payload: %v", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// ─── Auth ────────────────────────────────────────────────────────────────────

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, credentials{username, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Refresh(ctx context.Context) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout revokes the token server-side. Best-effort: the caller clears local
// state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// ─── Branches ────────────────────────────────────────────────────────────────

func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	var out []Branch
	if err := c.get(ctx, "/branches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBranch(ctx context.Context, id uuid.UUID) (*Branch, error) {
	var out Branch
	if err := c.get(ctx, "/branches/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBranch(ctx context.Context, in BranchInput) (*Branch, error) {
	var out Branch
	if err := c.do(ctx, http.MethodPost, "/branches", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBranch(ctx context.Context, id uuid.UUID, in BranchInput) (*Branch, error) {
	var out Branch
	if err := c.do(ctx, http.MethodPut, "/branches/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/approve", id), nil, nil, nil)
}

func (c *Client) RejectUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/reject", id), nil, nil, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, in UserUpdateInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/users/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Products ────────────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context, branchID uuid.UUID) ([]Product, error) {
	q := url.Values{}
	if branchID != uuid.Nil {
		q.Set("branch_id", branchID.String())
	}
	var out []Product
	if err := c.get(ctx, "/products", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Batches ─────────────────────────────────────────────────────────────────

func (c *Client) ListBatches(ctx context.Context) ([]Batch, error) {
	var out []Batch
	if err := c.get(ctx, "/batches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error) {
	var out Batch
	if err := c.get(ctx, "/batches/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BatchStatistics(ctx context.Context) (*BatchStats, error) {
	var out BatchStats
	if err := c.get(ctx, "/batches/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Sales ───────────────────────────────────────────────────────────────────

func (c *Client) ListSales(ctx context.Context, branchID uuid.UUID) ([]Sale, error) {
	q := url.Values{}
	if branchID != uuid.Nil {
		q.Set("branch_id", branchID.String())
	}
	var out []Sale
	if err := c.get(ctx, "/sales", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSale(ctx context.Context, in SaleInput) (*Sale, error) {
	var out Sale
	if err := c.do(ctx, http.MethodPost, "/sales", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Expenses ────────────────────────────────────────────────────────────────

func (c *Client) ListExpenses(ctx context.Context, branchID uuid.UUID) ([]Expense, error) {
	q := url.Values{}
	if branchID != uuid.Nil {
		q.Set("branch_id", branchID.String())
	}
	var out []Expense
	if err := c.get(ctx, "/expenses", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	var out Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListExpenseCategories(ctx context.Context) ([]ExpenseCategory, error) {
	var out []ExpenseCategory
	if err := c.get(ctx, "/expense-categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExpenseCategory(ctx context.Context, in ExpenseCategoryInput) (*ExpenseCategory, error) {
	var out ExpenseCategory
	if err := c.do(ctx, http.MethodPost, "/expense-categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExpenseCategory(ctx context.Context, id uuid.UUID, in ExpenseCategoryInput) (*ExpenseCategory, error) {
	var out ExpenseCategory
	if err := c.do(ctx, http.MethodPut, "/expense-categories/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExpenseCategory(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/expense-categories/"+id.String(), nil, nil, nil)
}

// ─── Stock transfers ─────────────────────────────────────────────────────────

func (c *Client) ListTransfers(ctx context.Context) ([]StockTransfer, error) {
	var out []StockTransfer
	if err := c.get(ctx, "/stock-transfers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPendingTransfers(ctx context.Context) ([]StockTransfer, error) {
	var out []StockTransfer
	if err := c.get(ctx, "/stock-transfers/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTransfer(ctx context.Context, in TransferInput) (*StockTransfer, error) {
	var out StockTransfer
	if err := c.do(ctx, http.MethodPost, "/stock-transfers", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApproveTransfer(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/stock-transfers/%s/approve", id), nil, nil, nil)
}

type rejectTransferInput struct {
	Reason string `json:"reason"`
}

func (c *Client) RejectTransfer(ctx context.Context, id uuid.UUID, reason string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/stock-transfers/%s/reject", id), nil, rejectTransferInput{reason}, nil)
}

// ─── Statistics ──────────────────────────────────────────────────────────────

func (c *Client) DashboardStatistics(ctx context.Context, branchID uuid.UUID) (*Stats, error) {
	q := url.Values{}
	if branchID != uuid.Nil {
		q.Set("branch_id", branchID.String())
	}
	var out Stats
	if err := c.get(ctx, "/statistics/dashboard", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
