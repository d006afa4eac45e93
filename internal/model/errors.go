package model

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken      = errors.New("email already registered")
	ErrNationalIDTaken = errors.New("national id already registered")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code expired")

	ErrInvalidToken = errors.New("token invalid or expired")
	// ErrTokenMismatch marks a rotation-replay: the presented refresh token
	// verified but no longer matches the account's stored slot.
	ErrTokenMismatch = errors.New("refresh token superseded")

	ErrUnderage     = errors.New("must be at least 18 years old")
	ErrForbidden    = errors.New("insufficient role")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrUnknownRole  = errors.New("unknown role")
)
