package dto

import "dukapos/internal/upstream"

type BranchRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Location string `json:"location" validate:"required,min=2,max=200"`
	Contact  string `json:"contact" validate:"omitempty,max=60"`
	Active   bool   `json:"active"`
}

func (r BranchRequest) ToInput() upstream.BranchInput {
	return upstream.BranchInput{
		Name:     r.Name,
		Location: r.Location,
		Contact:  r.Contact,
		Active:   r.Active,
	}
}
