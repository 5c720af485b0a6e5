package service

import "fmt"

// Code identifies a class of domain failure. Handlers map codes to HTTP
// statuses; services never touch HTTP.
type Code string

const (
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeInvalidOTP         Code = "INVALID_OTP"
	CodeOTPExpired         Code = "OTP_EXPIRED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInsufficientStock  Code = "INSUFFICIENT_STOCK"
	CodeInvalidState       Code = "INVALID_STATE"
	CodeEmptyCart          Code = "EMPTY_CART"
	CodeServerError        Code = "SERVER_ERROR"
)

// Error is a domain error with a stable code and caller-facing message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

func unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func invalidCredentials() *Error {
	// Intentionally identical for unknown email and wrong password.
	return &Error{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func tokenExpired(message string) *Error {
	return &Error{Code: CodeTokenExpired, Message: message}
}

func invalidOTP() *Error {
	return &Error{Code: CodeInvalidOTP, Message: "Invalid OTP"}
}

func otpExpired() *Error {
	return &Error{Code: CodeOTPExpired, Message: "OTP expired"}
}

func notFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func insufficientStock() *Error {
	return &Error{Code: CodeInsufficientStock, Message: "Insufficient stock"}
}

func invalidState(message string) *Error {
	return &Error{Code: CodeInvalidState, Message: message}
}

func emptyCart() *Error {
	return &Error{Code: CodeEmptyCart, Message: "Cart is empty"}
}
