package dto

import (
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=200"`
	Code         string          `json:"code" validate:"required,min=1,max=64"`
	Price        decimal.Decimal `json:"price" validate:"required,gt=0"`
	Cost         decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Unit         string          `json:"unit" validate:"omitempty,max=30"`
	Category     string          `json:"category" validate:"omitempty,max=100"`
	BranchID     uuid.UUID       `json:"branch_id"`
}

func (r ProductRequest) ToInput() upstream.ProductInput {
	return upstream.ProductInput{
		Name:         r.Name,
		Code:         r.Code,
		Price:        r.Price,
		Cost:         r.Cost,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		Unit:         r.Unit,
		Category:     r.Category,
		BranchID:     r.BranchID,
	}
}
