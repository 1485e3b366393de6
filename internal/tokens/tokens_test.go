package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	raw, err := SignAccessToken("admin", "admin", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := AccessClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, "admin", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	t.Parallel()
	raw, err := SignAccessToken("admin", "admin", []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, []byte("secret-b"))
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	raw, err := SignAccessToken("admin", "admin", secret, -time.Minute)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, secret)
	require.Error(t, err)
}
