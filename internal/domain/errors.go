package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateAccount  = errors.New("email already registered")
	ErrAccountNotFound   = errors.New("account not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNoResetRequest    = errors.New("no reset requested for this email")
	ErrResetCodeExpired  = errors.New("reset code expired")
	ErrInvalidResetCode  = errors.New("invalid code")
)
