package generation

import "errors"

var (
	// ErrRegistryRequired is returned when no provider registry is given.
	ErrRegistryRequired = errors.New("provider registry is required")

	// ErrNoBinding is reported for a provider that has no generator bound.
	ErrNoBinding = errors.New("no generator bound for provider")
)
