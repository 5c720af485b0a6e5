package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/auth"
	"github.com/Tharunikaraja/ecommerce-backend/internal/mailer"
	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// AuthStore is the persistence surface the auth flow needs.
type AuthStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error
	ReplaceOTP(ctx context.Context, otp *models.OTP) error
	GetOTP(ctx context.Context, email, code string) (*models.OTP, error)
	DeleteOTPs(ctx context.Context, email string) error
}

// AuthService orchestrates signup, login and the OTP password-reset flow.
type AuthService struct {
	store  AuthStore
	tokens *auth.TokenIssuer
	mail   mailer.Sender
	otpTTL time.Duration
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store AuthStore, tokens *auth.TokenIssuer, mail mailer.Sender, otpTTL time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		mail:   mail,
		otpTTL: otpTTL,
		logger: util.GetLogger(),
	}
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return invalidArgument("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return invalidArgument("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalidArgument(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// Signup registers a new user and issues a session token.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*models.User, string, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Signup")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return nil, "", invalidArgument("All fields are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, "", err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", conflict("User already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", conflict("User already exists")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.IssueSessionToken(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	util.SignupsTotal.Inc()
	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// Login verifies credentials and issues a session token. The failure is the
// same whether the email is unknown or the password mismatches.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", invalidArgument("Email and password are required")
	}
	if err := validateEmail(email); err != nil {
		return "", err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			util.LoginsTotal.WithLabelValues("failure").Inc()
			return "", invalidCredentials()
		}
		return "", err
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		util.LoginsTotal.WithLabelValues("failure").Inc()
		return "", invalidCredentials()
	}

	token, err := s.tokens.IssueSessionToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	util.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// ForgotPassword issues a one-time code for email and delivers it by mail.
// Any previously issued code for the address is superseded. Mail delivery
// failure fails the whole request.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := util.StartSpan(ctx, "AuthService.ForgotPassword")
	defer span.End()

	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound("User not found")
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.store.ReplaceOTP(ctx, otp); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf(
		"Your password reset code is %s. It expires in %s.\n\nIf you did not request a password reset, you can ignore this email.",
		code, s.otpTTL,
	)
	if err := s.mail.Send(email, "Password Reset Code", body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	util.OTPIssuedTotal.Inc()
	util.EmailsSentTotal.WithLabelValues("otp").Inc()
	s.logger.Info("Password reset code issued", zap.String("email", email))
	return nil
}

// VerifyOTP consumes a one-time code and issues a short-lived reset token.
// An expired code is purged so a retry fails as invalid rather than expired.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.VerifyOTP")
	defer span.End()

	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return "", invalidArgument("Email and OTP are required")
	}

	otp, err := s.store.GetOTP(ctx, email, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			util.OTPVerifiedTotal.WithLabelValues("invalid").Inc()
			return "", invalidOTP()
		}
		return "", err
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.store.DeleteOTPs(ctx, email); err != nil {
			return "", fmt.Errorf("failed to purge expired OTP: %w", err)
		}
		util.OTPVerifiedTotal.WithLabelValues("expired").Inc()
		return "", otpExpired()
	}

	if err := s.store.DeleteOTPs(ctx, email); err != nil {
		return "", fmt.Errorf("failed to consume OTP: %w", err)
	}

	resetToken, err := s.tokens.IssueResetToken(email)
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	util.OTPVerifiedTotal.WithLabelValues("success").Inc()
	return resetToken, nil
}

// ResetPassword sets a new password for the user bound to the reset token.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	ctx, span := util.StartSpan(ctx, "AuthService.ResetPassword")
	defer span.End()

	if resetToken == "" {
		return unauthorized("Reset token is required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	email, err := s.tokens.VerifyResetToken(resetToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return tokenExpired("Reset token expired")
		}
		return unauthorized("Invalid reset token")
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdateUserPassword(ctx, email, passwordHash); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound("User not found")
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.store.DeleteOTPs(ctx, email); err != nil {
		return fmt.Errorf("failed to purge OTP records: %w", err)
	}

	util.PasswordResetsTotal.Inc()
	s.logger.Info("Password reset completed", zap.String("email", email))
	return nil
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
