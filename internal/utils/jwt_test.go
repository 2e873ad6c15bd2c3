package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Equal(t, ErrMissingSecret, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("signing-key", time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateJWT("guest@bistro.test", "Guest")
	require.NoError(t, err)

	claims, err := m.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.test", claims.Email)
	assert.Equal(t, "Guest", claims.Name)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateRequiresEmail(t *testing.T) {
	m, err := NewTokenManager("signing-key", time.Hour)
	require.NoError(t, err)

	_, err = m.GenerateJWT("  ", "")
	assert.Equal(t, ErrMissingEmail, err)
}

func TestValidateRejects(t *testing.T) {
	m, err := NewTokenManager("signing-key", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("another-key", time.Hour)
	require.NoError(t, err)

	expired, err := NewTokenManager("signing-key", time.Hour)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateJWT("guest@bistro.test", "")
	require.NoError(t, err)

	foreignToken, err := other.GenerateJWT("guest@bistro.test", "")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "guest@bistro.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "guest@bistro.test"}).
		SignedString([]byte("signing-key"))
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("signing-key"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"Empty":       "",
		"Garbage":     "not.a.token",
		"Expired":     expiredToken,
		"WrongSecret": foreignToken,
		"NoneAlg":     noneToken,
		"NoExpiry":    noExpiry,
		"NoEmail":     noEmail,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateJWT(token)
			assert.Error(t, err)
		})
	}
}
