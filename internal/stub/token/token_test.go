package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue("alice")
	require.NoError(t, err)

	username, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestIssuer_Rejects(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("alice")
	require.NoError(t, err)

	t.Run("foreign signature", func(t *testing.T) {
		_, err := issuer.Parse(foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		signed, err := issuer.Issue("alice")
		require.NoError(t, err)

		issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { issuer.now = time.Now }()

		_, err = issuer.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewIssuer_RandomSecret(t *testing.T) {
	first, err := NewIssuer("", 0)
	require.NoError(t, err)
	second, err := NewIssuer("", 0)
	require.NoError(t, err)

	signed, err := first.Issue("bob")
	require.NoError(t, err)

	_, err = second.Parse(signed)
	assert.Error(t, err)
}
