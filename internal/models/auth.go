package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest holds the identity claims presented when minting a credential.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenClaims represents the JWT payload carried in the credential cookie.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed credential with its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthResult is the body returned by the auth endpoints.
type AuthResult struct {
	Success bool `json:"success"`
}
