package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type claims. The reset token is a separate, narrower credential:
// holding a valid session never authorizes a password reset and vice versa.
const (
	tokenTypeSession = "session"
	tokenTypeReset   = "reset"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenIssuer issues and verifies the service's JWT credentials.
type TokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with HMAC-SHA256.
func NewTokenIssuer(secret string, sessionTTL, resetTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

type sessionClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	TokenType string `json:"typ"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// IssueSessionToken issues a long-lived session token for userID.
func (t *TokenIssuer) IssueSessionToken(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.sessionTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifySessionToken validates a session token and returns the user ID.
func (t *TokenIssuer) VerifySessionToken(token string) (string, error) {
	claims := &sessionClaims{}
	if err := t.parse(token, claims); err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeSession || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// IssueResetToken issues a short-lived password-reset token bound to email.
func (t *TokenIssuer) IssueResetToken(email string) (string, error) {
	now := time.Now()
	claims := resetClaims{
		TokenType: tokenTypeReset,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.resetTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyResetToken validates a reset token and returns the bound email.
func (t *TokenIssuer) VerifyResetToken(token string) (string, error) {
	claims := &resetClaims{}
	if err := t.parse(token, claims); err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeReset || claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

func (t *TokenIssuer) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
