package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	user := uuid.New()

	token, err := GenerateJWT("secret", user, time.Hour)
	require.NoError(t, err)

	got, err := ParseJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestParse_Rejects(t *testing.T) {
	user := uuid.New()

	good, err := GenerateJWT("secret", user, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("secret", user, -time.Minute)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   user.String(),
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	notUUID := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	badSubject, err := notUUID.SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]struct{ secret, token string }{
		"wrong secret": {"other", good},
		"expired":      {"secret", expired},
		"alg none":     {"secret", unsigned},
		"bad subject":  {"secret", badSubject},
		"garbage":      {"secret", "not.a.token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWT(tc.secret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMissingSecret(t *testing.T) {
	_, err := GenerateJWT("", uuid.New(), time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = ParseJWT("", "x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
