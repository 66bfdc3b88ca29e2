package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminboard/adminboard/internal/auth"
)

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService([]byte("test-secret-key"), 15*time.Minute, 24000*time.Hour)
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := auth.NewTokenService(nil, time.Minute, time.Hour)
	require.Error(t, err)
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Issue("user-42", time.Hour)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.False(t, claims.Expired(time.Now().UTC()))
}

func TestTokenService_EmptySubject(t *testing.T) {
	ts := newTokenService(t)

	_, err := ts.Issue("", time.Hour)
	require.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestTokenService_TamperedTokenFails(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Issue("user-42", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	for i, name := range []string{"header", "payload", "signature"} {
		mutated := make([]string, 3)
		copy(mutated, parts)
		mutated[i] = flipChar(mutated[i])
		_, err := ts.Verify(strings.Join(mutated, "."))
		assert.ErrorIs(t, err, auth.ErrUnauthorized, "mutated %s must not verify", name)
	}
}

func TestTokenService_WrongKeyFails(t *testing.T) {
	ts := newTokenService(t)
	other, err := auth.NewTokenService([]byte("another-secret"), time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-42", time.Hour)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestTokenService_GarbageFails(t *testing.T) {
	ts := newTokenService(t)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "....."} {
		_, err := ts.Verify(tok)
		assert.ErrorIs(t, err, auth.ErrUnauthorized, "token %q", tok)
	}
}

func TestTokenService_VerifyDoesNotEnforceExpiry(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Issue("user-42", 0)
	require.NoError(t, err)

	// Signature is authentic, so Verify succeeds; expiry is the caller's call.
	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.True(t, claims.Expired(time.Now().UTC()))
}

func TestTokenService_LongTTLNotExpired(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.IssueRefresh("user-42")
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.False(t, claims.Expired(time.Now().UTC()))
	assert.False(t, claims.Expired(time.Now().UTC().Add(23999*time.Hour)))
}

// flipChar swaps one character in the middle of a base64url segment so the
// decoded bytes change.
func flipChar(s string) string {
	i := len(s) / 2
	c := byte('A')
	if s[i] == c {
		c = 'B'
	}
	return s[:i] + string(c) + s[i+1:]
}
