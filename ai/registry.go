package ai

import (
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/aiosion/core"
)

// Registry maps provider names to their bound generators.
// It is immutable once created.
type Registry struct {
	bindings map[core.ProviderName]Generator
	order    []core.ProviderName
	logger   *slog.Logger
}

// NewRegistry binds the given generators by their Name. When two generators
// share a name the later one wins.
func NewRegistry(gens ...Generator) *Registry {
	r := &Registry{
		bindings: make(map[core.ProviderName]Generator, len(gens)),
		logger:   slog.Default().With("component", "ai-registry"),
	}
	for _, g := range gens {
		if g == nil {
			continue
		}
		name := g.Name()
		if _, dup := r.bindings[name]; !dup {
			r.order = append(r.order, name)
		}
		r.bindings[name] = g
	}
	return r
}

// Lookup returns the generator bound to name.
func (r *Registry) Lookup(name core.ProviderName) (Generator, bool) {
	g, ok := r.bindings[name]
	return g, ok
}

// Names returns the bound provider names in binding order.
func (r *Registry) Names() []core.ProviderName {
	return append([]core.ProviderName(nil), r.order...)
}

// Len returns the number of bound providers.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Close releases generators that hold resources.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.order {
		if c, ok := r.bindings[name].(io.Closer); ok {
			r.logger.Debug("closing provider", "provider", name)
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
