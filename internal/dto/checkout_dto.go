package dto

import "github.com/google/uuid"

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CartQuantityRequest sets an absolute quantity; zero removes the line.
type CartQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
}

type CheckoutRequest struct {
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=cash mobile_money card bank_transfer"`
	PaymentReference string `json:"payment_reference" validate:"omitempty,max=100"`
}
