package auth

import "errors"

var (
	ErrHashing            = errors.New("password hashing failed")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	// ErrUserGone is returned for a well-formed token whose user no longer exists.
	ErrUserGone = errors.New("token user not found")
)
