package service

import "errors"

// Error kinds surfaced to the API layer. Handlers map these to HTTP statuses
// with errors.Is; anything unrecognized becomes a 500.
var (
	// ErrUserNotFound is returned when an operation requires an existing
	// ledger row and none exists (the client must sync first).
	ErrUserNotFound = errors.New("user not found")

	// ErrQuotaExceeded is returned when the daily generation limit is spent.
	ErrQuotaExceeded = errors.New("daily generation limit reached")

	// ErrProviderUnavailable is returned when no provider credential is
	// configured. Fatal at request time, never retried.
	ErrProviderUnavailable = errors.New("generation provider is not configured")

	// ErrGenerationFailed is returned when the provider answered with no
	// content or content that is not the expected JSON shape.
	ErrGenerationFailed = errors.New("provider returned unusable content")

	// ErrInvalidProviderResponse is the detail-generation variant of
	// ErrGenerationFailed; failed parses are never cached.
	ErrInvalidProviderResponse = errors.New("provider returned invalid recipe detail")
)
