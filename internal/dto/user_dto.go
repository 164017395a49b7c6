package dto

import (
	"dukapos/internal/upstream"

	"github.com/google/uuid"
)

type UserUpdateRequest struct {
	Name     string    `json:"name" validate:"required,min=2,max=120"`
	Email    string    `json:"email" validate:"omitempty,email"`
	Role     string    `json:"role" validate:"required,oneof=superuser manager cashier"`
	BranchID uuid.UUID `json:"branch_id" validate:"required"`
}

func (r UserUpdateRequest) ToInput() upstream.UserUpdateInput {
	return upstream.UserUpdateInput{
		Name:     r.Name,
		Email:    r.Email,
		Role:     r.Role,
		BranchID: r.BranchID,
	}
}

type RejectUserRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
