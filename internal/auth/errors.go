package auth

import "errors"

// Sentinel errors for the authentication core. Callers should use
// errors.Is to match these values; most are wrapped with detail at the
// point of failure.
var (
	// ErrValidation covers malformed input and weak passwords. Expected,
	// recovered locally by re-prompting.
	ErrValidation = errors.New("validation error")

	// ErrNotFound means no user matches the given username.
	ErrNotFound = errors.New("user not found")

	// ErrUnauthorized means a wrong password or a failed one-time code.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoContact means the user has no contact configured for the
	// chosen delivery channel, so no code can be sent.
	ErrNoContact = errors.New("no contact configured for channel")

	// ErrDeliveryFailed means the notifier could not deliver a code.
	// No automatic retry is attempted.
	ErrDeliveryFailed = errors.New("code delivery failed")

	// ErrInvalidToken means a session token failed validation.
	ErrInvalidToken = errors.New("invalid token")
)
