package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseTokenValid(t *testing.T) {
	signed := signToken(t, Claims{
		EmpID: "ALICE001",
		Role:  "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ALICE001", claims.EmpID)
	assert.Equal(t, "employee", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed := signToken(t, Claims{EmpID: "ALICE001"}, "other-secret")

	_, err := ParseToken(signed, testSecret)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	signed := signToken(t, Claims{
		EmpID: "ALICE001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	_, err := ParseToken(signed, testSecret)
	require.Error(t, err)
}

func TestParseTokenMissingEmpID(t *testing.T) {
	signed := signToken(t, Claims{Role: "employee"}, testSecret)

	_, err := ParseToken(signed, testSecret)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	require.Error(t, err)
}
