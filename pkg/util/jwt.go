package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// AuthClaims is the payload carried by a bearer token. The field names are
// part of the wire format consumed by existing clients.
type AuthClaims struct {
	UserID   uint   `json:"id"`
	Phone    string `json:"phone"`
	Guest    bool   `json:"guest"`
	Employee bool   `json:"employee"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 bearer token for the given user,
// valid for the given duration.
func GenerateToken(userID uint, phone, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID:   userID,
		Phone:    phone,
		Guest:    false,
		Employee: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the signature and expiry of a token and returns
// its claims.
func ValidateToken(tokenString, secret string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
