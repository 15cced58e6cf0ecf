package accounts

import "errors"

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken means an account with this email already exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrNotFound means no account matched.
	ErrNotFound = errors.New("account not found")
	// ErrNotConfirmed means the account exists but has not confirmed its email.
	ErrNotConfirmed = errors.New("email address not confirmed")
	// ErrInvalidInput means a required field was missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)
