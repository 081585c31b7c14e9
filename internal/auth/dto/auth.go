package dto

import "github.com/egarc258/ecommerce-app/internal/auth/domain"

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token     string      `json:"token"`
	Type      string      `json:"type"`
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}
