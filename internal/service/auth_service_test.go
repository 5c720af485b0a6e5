package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharunikaraja/ecommerce-backend/internal/auth"
)

func newAuthService(t *testing.T, store *fakeStore, mail *fakeMailer, otpTTL time.Duration) *AuthService {
	t.Helper()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, 15*time.Minute)
	return NewAuthService(store, tokens, mail, otpTTL)
}

func signupUser(t *testing.T, svc *AuthService, email string) {
	t.Helper()
	_, _, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)

	user, token, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	// Same address in a different case still conflicts.
	_, _, err = svc.Signup(context.Background(), &SignupRequest{
		Name:     "Alice Again",
		Email:    "ALICE@example.com",
		Password: "secret456",
	})
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService(t, newFakeStore(), &fakeMailer{}, 10*time.Minute)

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{"missing name", SignupRequest{Email: "a@example.com", Password: "secret123"}},
		{"bad email", SignupRequest{Name: "A", Email: "not-an-email", Password: "secret123"}},
		{"short password", SignupRequest{Name: "A", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), &tt.req)
			var domainErr *Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, CodeInvalidArgument, domainErr.Code)
		})
	}
}

func TestLoginIdenticalFailureForUnknownUserAndWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "bob@example.com")

	_, errUnknown := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	_, errWrongPass := svc.Login(context.Background(), &LoginRequest{
		Email:    "bob@example.com",
		Password: "wrongpass",
	})

	var e1, e2 *Error
	require.ErrorAs(t, errUnknown, &e1)
	require.ErrorAs(t, errWrongPass, &e2)
	assert.Equal(t, CodeInvalidCredentials, e1.Code)
	assert.Equal(t, e1.Message, e2.Message)
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "carol@example.com")

	token, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(t, newFakeStore(), &fakeMailer{}, 10*time.Minute)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestForgotPasswordMailFailureFailsRequest(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{fail: true}
	svc := newAuthService(t, store, mail, 10*time.Minute)
	signupUser(t, svc, "dave@example.com")

	err := svc.ForgotPassword(context.Background(), "dave@example.com")
	assert.Error(t, err)
}

func TestForgotPasswordSupersedesPreviousCode(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := newAuthService(t, store, mail, 10*time.Minute)
	signupUser(t, svc, "erin@example.com")

	require.NoError(t, svc.ForgotPassword(context.Background(), "erin@example.com"))
	first := store.otpFor("erin@example.com").Code

	require.NoError(t, svc.ForgotPassword(context.Background(), "erin@example.com"))
	second := store.otpFor("erin@example.com").Code

	// The first code is gone regardless of whether the two codes collide.
	if first != second {
		_, err := svc.VerifyOTP(context.Background(), "erin@example.com", first)
		var domainErr *Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidOTP, domainErr.Code)
	}
	assert.Len(t, store.otps, 1)
	assert.Len(t, mail.sent, 2)
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "frank@example.com")
	require.NoError(t, svc.ForgotPassword(context.Background(), "frank@example.com"))
	code := store.otpFor("frank@example.com").Code

	resetToken, err := svc.VerifyOTP(context.Background(), "frank@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, resetToken)

	// A second verify with the same code fails as invalid, not expired.
	_, err = svc.VerifyOTP(context.Background(), "frank@example.com", code)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidOTP, domainErr.Code)
}

func TestVerifyOTPExpiredCodeIsPurged(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, -time.Minute)
	signupUser(t, svc, "grace@example.com")
	require.NoError(t, svc.ForgotPassword(context.Background(), "grace@example.com"))
	code := store.otpFor("grace@example.com").Code

	_, err := svc.VerifyOTP(context.Background(), "grace@example.com", code)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeOTPExpired, domainErr.Code)

	// The expired record was purged, so a retry now reads as invalid.
	_, err = svc.VerifyOTP(context.Background(), "grace@example.com", code)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidOTP, domainErr.Code)
}

func TestResetPasswordFullFlow(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "heidi@example.com")
	require.NoError(t, svc.ForgotPassword(context.Background(), "heidi@example.com"))
	code := store.otpFor("heidi@example.com").Code

	resetToken, err := svc.VerifyOTP(context.Background(), "heidi@example.com", code)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), resetToken, "newsecret"))

	// Old password no longer works, new one does.
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "heidi@example.com", Password: "secret123"})
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "heidi@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestResetPasswordRejectsBadTokens(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(t, store, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "ivan@example.com")

	var domainErr *Error

	err := svc.ResetPassword(context.Background(), "", "newsecret")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeUnauthorized, domainErr.Code)

	err = svc.ResetPassword(context.Background(), "garbage-token", "newsecret")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeUnauthorized, domainErr.Code)

	// A session token is not a reset token.
	sessionToken, err := svc.Login(context.Background(), &LoginRequest{Email: "ivan@example.com", Password: "secret123"})
	require.NoError(t, err)
	err = svc.ResetPassword(context.Background(), sessionToken, "newsecret")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeUnauthorized, domainErr.Code)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	store := newFakeStore()
	expiredIssuer := auth.NewTokenIssuer("test-secret", time.Hour, -time.Minute)
	svc := NewAuthService(store, expiredIssuer, &fakeMailer{}, 10*time.Minute)
	signupUser(t, svc, "judy@example.com")

	resetToken, err := expiredIssuer.IssueResetToken("judy@example.com")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), resetToken, "newsecret")
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeTokenExpired, domainErr.Code)
}
