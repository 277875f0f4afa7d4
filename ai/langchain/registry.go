package langchain

import (
	"context"
	"log/slog"

	"github.com/poiesic/aiosion/ai"
	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/core"
)

// constructor is swapped in tests to avoid building real clients.
var constructor = NewGenerator

// NewRegistry binds every configured provider. Providers whose client cannot
// be built are bound to ai.Unavailable and logged.
func NewRegistry(ctx context.Context, cfg *config.Config) (*ai.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "langchain-registry")
	gens := make([]ai.Generator, 0, len(cfg.Models))
	for _, name := range core.ProviderNames() {
		m, ok := cfg.Model(name)
		if !ok {
			continue
		}
		gen, err := constructor(ctx, name, m.Default, config.ResolveAPIKey(m.APIKey))
		if err != nil {
			logger.Warn("provider unavailable", "provider", name, "model", m.Default, "err", err)
			gen = ai.Unavailable(name, m.Default, err)
		}
		gens = append(gens, gen)
	}
	return ai.NewRegistry(gens...), nil
}
