package dto

import (
	"dukapos/internal/upstream"

	"github.com/google/uuid"
)

type TransferRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required,min=1"`
	FromBranchID uuid.UUID `json:"from_branch_id" validate:"required"`
	ToBranchID   uuid.UUID `json:"to_branch_id" validate:"required"`
}

func (r TransferRequest) ToInput() upstream.TransferInput {
	return upstream.TransferInput{
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		FromBranchID: r.FromBranchID,
		ToBranchID:   r.ToBranchID,
	}
}

type RejectTransferRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
