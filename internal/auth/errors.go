package auth

import "errors"

var (
	// ErrInvalidInput covers malformed request data (empty secret, blank email).
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists is returned when registering an email that is taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the API never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned on id lookup misses.
	ErrNotFound = errors.New("user not found")
	// ErrUnauthorized covers missing, forged or structurally broken tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired marks a token with a good signature whose expiry has
	// elapsed. Callers map it to the same external response as
	// ErrUnauthorized but can tell the cases apart.
	ErrTokenExpired = errors.New("token expired")
)
