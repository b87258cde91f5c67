package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newClaims(expiresIn time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "userhub",
		Audience:  jwt.ClaimStrings{"userhub"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}
}

func TestSignAndParse(t *testing.T) {
	a := NewJWTAuthenticator("userhub", "userhub")

	tokenStr, err := a.Sign(newClaims(time.Minute), "secret")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	parsed := jwt.RegisteredClaims{}
	_, err = a.Parse(tokenStr, "secret", &parsed)
	require.NoError(t, err)
	require.Equal(t, "user-1", parsed.Subject)
}

func TestParseWrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("userhub", "userhub")

	tokenStr, err := a.Sign(newClaims(time.Minute), "secret")
	require.NoError(t, err)

	_, err = a.Parse(tokenStr, "other-secret", &jwt.RegisteredClaims{})
	require.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	a := NewJWTAuthenticator("userhub", "userhub")

	tokenStr, err := a.Sign(newClaims(-time.Minute), "secret")
	require.NoError(t, err)

	_, err = a.Parse(tokenStr, "secret", &jwt.RegisteredClaims{})
	require.Error(t, err)
}

func TestParseWrongIssuer(t *testing.T) {
	signer := NewJWTAuthenticator("userhub", "someone-else")
	verifier := NewJWTAuthenticator("userhub", "userhub")

	claims := newClaims(time.Minute)
	claims.Issuer = "someone-else"
	tokenStr, err := signer.Sign(claims, "secret")
	require.NoError(t, err)

	_, err = verifier.Parse(tokenStr, "secret", &jwt.RegisteredClaims{})
	require.Error(t, err)
}
