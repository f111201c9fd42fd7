// In file: internal/auth/auth_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/mcp-gateway/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	return NewManager(st, "test-secret")
}

func TestRegisterAndVerify(t *testing.T) {
	m := newTestManager(t)

	creds, err := m.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, creds.AccessToken)
	assert.Equal(t, int(TokenTTL.Seconds()), creds.ExpiresIn)

	identity, err := m.VerifyToken(creds.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, creds.UserID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.False(t, identity.IsAdmin)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	_, err = m.Register(context.Background(), "alice", "different")
	assert.ErrorIs(t, err, store.ErrUserExists)
}

func TestLogin(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	registered, err := m.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	creds, err := m.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, creds.UserID)

	_, err = m.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown user fails identically to a wrong password.
	_, err = m.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Invalid(t *testing.T) {
	m := newTestManager(t)

	_, err := m.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret.
	other := NewManager(nil, "other-secret")
	creds, err := other.issueToken("user-1", "alice", false)
	require.NoError(t, err)
	_, err = m.VerifyToken(creds.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := newTestManager(t)

	claims := Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	require.NoError(t, err)

	_, err = m.VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsNonHMAC(t *testing.T) {
	m := newTestManager(t)

	// alg=none tokens must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Username:         "alice",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
