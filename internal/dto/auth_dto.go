// Package dto holds the request payloads the embedded UI posts to the
// gateway, with their validation tags. Each converts to the corresponding
// upstream input after passing validation.
package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
