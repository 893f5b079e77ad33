package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	token, err := Sign("user-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@b.c", claims.Email)
}

func TestSignZeroTTLFallsBack(t *testing.T) {
	token, err := Sign("user-1", "", 0)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(DefaultTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(token)
	require.Error(t, err)
}

func TestParseRejectsWrongSigningMethod(t *testing.T) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: "user-1"})
	signed, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(signed)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token")
	require.Error(t, err)
}
