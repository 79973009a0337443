package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logisticpro/internal/models"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewManager([]byte("super-secret"), time.Hour)

	tokenString, expiresAt, err := m.Issue(42, models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager([]byte("secret"), -time.Second)

	tokenString, _, err := m.Issue(7, models.RoleUser)
	require.NoError(t, err)

	_, err = m.Verify(tokenString)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewManager([]byte("right-secret"), time.Hour)
	verifier := NewManager([]byte("wrong-secret"), time.Hour)

	tokenString, _, err := issuer.Issue(7, models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_TamperedSignature(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	tokenString, _, err := m.Issue(7, models.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)

	sig := parts[2]
	replacement := "A"
	if strings.HasSuffix(sig, "A") {
		replacement = "B"
	}
	tampered := parts[0] + "." + parts[1] + "." + sig[:len(sig)-1] + replacement

	_, err = m.Verify(tampered)
	require.Error(t, err)
	assert.True(t, err == ErrInvalidSignature || err == ErrMalformed, "got %v", err)
}

func TestVerify_Malformed(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	for _, tokenString := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, err := m.Verify(tokenString)
		assert.ErrorIs(t, err, ErrMalformed, "token=%q", tokenString)
	}
}

func TestSecretRotation_InvalidatesTokens(t *testing.T) {
	m := NewManager([]byte("generation-1"), time.Hour)
	tokenString, _, err := m.Issue(7, models.RoleUser)
	require.NoError(t, err)

	rotated := NewManager([]byte("generation-2"), time.Hour)
	_, err = rotated.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
