package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signHS256(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateJWTAcceptsHS256(t *testing.T) {
	signed := signHS256(t, Claims{
		Email: "fox@example.com",
		Name:  "Fox",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := ValidateJWT(signed, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "fox@example.com", claims.Email)
	assert.Equal(t, "Fox", claims.Name)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	signed := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "other-secret")

	_, err := ValidateJWT(signed, testSecret)
	require.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	signed := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	_, err := ValidateJWT(signed, testSecret)
	require.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	require.Error(t, err)
}
