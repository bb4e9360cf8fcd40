package auth

import "errors"

// Validation/state error kinds. Handlers match these with errors.Is to pick a
// status code; the wrapped message is what the user sees.
var (
	ErrAccountExists   = errors.New("account already exists")
	ErrNotFound        = errors.New("account not found")
	ErrWrongAuthMethod = errors.New("wrong sign-in method")
	ErrNotVerified     = errors.New("email not verified")
	ErrBadCredential   = errors.New("incorrect password")
	ErrTooManyAttempts = errors.New("too many login attempts")
)
