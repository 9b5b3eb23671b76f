package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestionparc/fleet-api/models"
)

// TokenTTL is the default lifetime of an issued bearer token
const TokenTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, elapsed expiry. Callers never distinguish them to the client.
var ErrInvalidToken = errors.New("token invalide ou expiré")

// SignToken issues a signed HS256 bearer token for the given user
func SignToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	now := time.Now()
	claims := models.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Details.Email,
		Role:   user.Details.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a bearer token and returns its claims.
// Any failure collapses into ErrInvalidToken.
func VerifyToken(raw string, secret []byte) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
