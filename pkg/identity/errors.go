package identity

import "errors"

var (
	// ErrMissingSigningKey is returned when a verifier is constructed
	// without key material.
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrInvalidToken covers malformed, expired and badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnexpectedSigningMethod is returned when a token is signed with
	// anything other than the HMAC family the auth service uses.
	ErrUnexpectedSigningMethod = errors.New("unexpected token signing method")
)
