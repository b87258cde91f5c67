package usecase

import "errors"

// Failure outcomes surfaced to the transport layer. Validation errors are
// recoverable by correcting the input; token and activation-state errors are
// recoverable through a separate flow; ErrNotificationFailed reports a mail
// delivery failure for state that has already been committed.
var (
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrWeakPassword        = errors.New("password is too weak")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already registered")
	ErrNotificationFailed  = errors.New("notification email could not be sent")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountNotActivated = errors.New("account is not activated")
)
