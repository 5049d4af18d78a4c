package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kioskmart/apperr"
)

// TokenManager issues and verifies bearer tokens. The payload carries only
// the admin id; role and brand links are re-fetched from the database per
// request, never trusted from the token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

func (m *TokenManager) Issue(adminID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": adminID,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.Unauthenticated("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Unauthenticated("invalid token claims")
	}
	id, ok := claims["admin_id"].(float64)
	if !ok || id <= 0 {
		return 0, apperr.Unauthenticated("invalid token claims")
	}
	return uint(id), nil
}
