package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("1234")
	require.NoError(t, err)

	assert.NotEqual(t, "1234", hash)
	assert.True(t, CheckPasswordHash("1234", hash))
	assert.False(t, CheckPasswordHash("4321", hash))
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour, "investify-pos")
	id := uuid.New()

	token, err := m.Issue(id, "cashier", []string{"cashier"})
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.OperatorID)
	assert.Equal(t, "cashier", claims.Name)
	assert.Equal(t, []string{"cashier"}, claims.Roles)
	assert.Equal(t, time.Hour, m.TTL())
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour, "investify-pos")
	other := NewJWTManager("other-secret", time.Hour, "investify-pos")
	expired := NewJWTManager("secret", -time.Minute, "investify-pos")
	foreign := NewJWTManager("secret", time.Hour, "someone-else")

	for name, issuer := range map[string]*JWTManager{"wrong secret": other, "wrong issuer": foreign} {
		token, err := issuer.Issue(uuid.New(), "x", nil)
		require.NoError(t, err, name)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, name)
	}

	token, err := expired.Issue(uuid.New(), "x", nil)
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	anonymous, err := m.Issue(uuid.Nil, "x", nil)
	require.NoError(t, err)
	_, err = m.Verify(anonymous)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestReceiptNumber(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	a := ReceiptNumber("INV", at)
	b := ReceiptNumber("INV", at)

	assert.True(t, strings.HasPrefix(a, "INV-20240309-"))
	assert.Len(t, a, len("INV-20240309-")+8)
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotEqual(t, a, b)
}
