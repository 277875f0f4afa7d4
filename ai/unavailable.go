package ai

import (
	"context"
	"fmt"

	"github.com/poiesic/aiosion/core"
)

type unavailable struct {
	name  core.ProviderName
	model string
	cause error
}

// Unavailable returns a Generator that fails every call with
// ErrProviderUnavailable, carrying cause when one is given.
func Unavailable(name core.ProviderName, model string, cause error) Generator {
	return &unavailable{name: name, model: model, cause: cause}
}

func (u *unavailable) Generate(ctx context.Context, prompt string) (string, error) {
	if u.cause == nil {
		return "", fmt.Errorf("%s: %w", u.name, ErrProviderUnavailable)
	}
	return "", fmt.Errorf("%s: %w: %w", u.name, ErrProviderUnavailable, u.cause)
}

func (u *unavailable) Name() core.ProviderName { return u.name }

func (u *unavailable) Model() string { return u.model }
