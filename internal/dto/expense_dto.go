package dto

import (
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	CategoryID    uuid.UUID       `json:"category_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description   string          `json:"description" validate:"required,min=3,max=500"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ReceiptNumber string          `json:"receipt_number" validate:"omitempty,max=64"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash mobile_money card bank_transfer"`
}

func (r ExpenseRequest) ToInput(branchID uuid.UUID) upstream.ExpenseInput {
	return upstream.ExpenseInput{
		CategoryID:    r.CategoryID,
		Amount:        r.Amount,
		Description:   r.Description,
		Date:          r.Date,
		ReceiptNumber: r.ReceiptNumber,
		PaymentMethod: r.PaymentMethod,
		BranchID:      branchID,
	}
}

type ExpenseCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Active      bool   `json:"active"`
}

func (r ExpenseCategoryRequest) ToInput() upstream.ExpenseCategoryInput {
	return upstream.ExpenseCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
	}
}
