package errors

import (
	"errors"
)

var (
	// ErrAuthenticationFailed covers both an unknown email and a wrong password.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrForbidden            = errors.New("insufficient role")
	ErrValidation           = errors.New("invalid input")
)
