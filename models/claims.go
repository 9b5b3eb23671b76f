package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the decoded payload of a bearer token. It is never persisted,
// only embedded in the signed token string and re-validated on every request.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
