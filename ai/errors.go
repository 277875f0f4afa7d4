package ai

import "errors"

var (
	// ErrProviderUnavailable is returned by providers that could not be constructed.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrEmptyResponse is returned when a provider answers without any content.
	ErrEmptyResponse = errors.New("empty response from provider")

	// ErrMissingAPIKey is returned when a provider's API key reference resolves to nothing.
	ErrMissingAPIKey = errors.New("missing API key")
)
