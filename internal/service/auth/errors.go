package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or the
	// signature doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidCredentials indicates an unknown email or wrong password.
	// Which of the two is deliberately not revealed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
