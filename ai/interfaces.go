package ai

import (
	"context"

	"github.com/poiesic/aiosion/core"
)

// MaxOutputTokens is the fixed output budget passed to every provider.
const MaxOutputTokens = 150

// Generator produces a text completion for a prompt using one provider.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate returns the provider's completion for prompt. Any failure,
	// including an empty response, is reported as an error.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider this generator is bound to.
	Name() core.ProviderName

	// Model is the provider-specific model identifier in use.
	Model() string
}
