package model

import "github.com/google/uuid"

// TokenClaims are the identity fields carried in an access token.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
