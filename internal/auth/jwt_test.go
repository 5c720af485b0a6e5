package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 15*time.Minute)

	token, err := issuer.IssueSessionToken("user-123")
	require.NoError(t, err)

	userID, err := issuer.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestResetTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 15*time.Minute)

	token, err := issuer.IssueResetToken("alice@example.com")
	require.NoError(t, err)

	email, err := issuer.VerifyResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestExpiredTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, -time.Minute)

	session, err := issuer.IssueSessionToken("user-123")
	require.NoError(t, err)
	_, err = issuer.VerifySessionToken(session)
	assert.ErrorIs(t, err, ErrTokenExpired)

	reset, err := issuer.IssueResetToken("alice@example.com")
	require.NoError(t, err)
	_, err = issuer.VerifyResetToken(reset)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 15*time.Minute)

	session, err := issuer.IssueSessionToken("user-123")
	require.NoError(t, err)
	reset, err := issuer.IssueResetToken("alice@example.com")
	require.NoError(t, err)

	_, err = issuer.VerifyResetToken(session)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = issuer.VerifySessionToken(reset)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 15*time.Minute)
	other := NewTokenIssuer("different", time.Hour, 15*time.Minute)

	token, err := issuer.IssueSessionToken("user-123")
	require.NoError(t, err)

	_, err = other.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 15*time.Minute)

	_, err := issuer.VerifySessionToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
