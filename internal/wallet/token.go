package wallet

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session token fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// TokenIssuer signs and verifies session tokens handed to the presentation
// layer on connect. The token carries the wallet address only.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

type sessionClaims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// NewTokenIssuer creates an issuer signing with the given secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given wallet address.
func (t *TokenIssuer) Issue(address string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify validates a session token and returns the wallet address it carries.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Address == "" {
		return "", ErrInvalidToken
	}
	return claims.Address, nil
}
