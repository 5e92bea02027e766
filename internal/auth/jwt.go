package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload inside every access token. Tokens are issued by an
// external identity service; this service only verifies them.
type Claims struct {
	EmpID string `json:"emp_id"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates a signed token and extracts the caller identity.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.EmpID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
