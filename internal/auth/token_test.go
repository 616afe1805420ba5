package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", "conductor", time.Hour)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UUID)
	assert.Equal(t, "conductor", claims.Issuer)
}

func TestVerify_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "conductor", time.Hour)
	valid, err := m.Issue("user-1")
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("other", "conductor", time.Hour).Issue("user-1")
	require.NoError(t, err)

	otherIssuer, err := NewTokenManager("secret", "elsewhere", time.Hour).Issue("user-1")
	require.NoError(t, err)

	expiredManager := NewTokenManager("secret", "conductor", time.Hour)
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredManager.Issue("user-1")
	require.NoError(t, err)

	noUUID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "conductor",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UUID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"tampered":     valid + "x",
		"other secret": otherSecret,
		"other issuer": otherIssuer,
		"expired":      expired,
		"no uuid":      noUUID,
		"alg none":     none,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
