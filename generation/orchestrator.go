// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/aiosion/ai"
	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
)

// ApologyMessage is returned when every candidate provider failed.
const ApologyMessage = "I apologize, but I'm unable to generate a response at the moment."

// Outcome describes how a generation request was served.
type Outcome struct {
	Text     string
	Provider core.ProviderName // Provider that produced Text, empty when degraded
	Model    string
	Attempts []core.Attempt
	Degraded bool
}

// Orchestrator serves generation requests over a provider registry.
// It is safe for concurrent use; none of its fields change after construction.
type Orchestrator struct {
	registry *ai.Registry
	primary  core.ProviderName
	fallback []core.ProviderName
	timeout  time.Duration
	journal  storage.JournalRepository
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithTimeout bounds each provider attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		if d < 0 {
			return fmt.Errorf("timeout must not be negative: %s", d)
		}
		o.timeout = d
		return nil
	}
}

// WithJournal records every completed request in journal.
func WithJournal(journal storage.JournalRepository) Option {
	return func(o *Orchestrator) error {
		o.journal = journal
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "generation")
		return nil
	}
}

// NewOrchestrator creates an orchestrator using the given selection policy.
// The fallback order is copied.
func NewOrchestrator(registry *ai.Registry, selection config.SelectionConfig, opts ...Option) (*Orchestrator, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if !selection.Primary.IsValid() {
		return nil, fmt.Errorf("primary: %w: %q", core.ErrUnsupportedProvider, selection.Primary)
	}
	for _, name := range selection.FallbackOrder {
		if !name.IsValid() {
			return nil, fmt.Errorf("fallback order: %w: %q", core.ErrUnsupportedProvider, name)
		}
	}

	o := &Orchestrator{
		registry: registry,
		primary:  selection.Primary,
		fallback: append([]core.ProviderName(nil), selection.FallbackOrder...),
		logger:   slog.Default().With("component", "generation"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Generate returns the completion for prompt from the named provider. An
// empty or unknown name is rejected with core.ErrUnsupportedProvider before
// any provider is called; provider failures end in ApologyMessage.
func (o *Orchestrator) Generate(ctx context.Context, prompt, provider string) (string, error) {
	out, err := o.GenerateDetailed(ctx, prompt, provider)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// GeneratePrimary returns the completion for prompt from the configured
// primary provider. It never returns an error.
func (o *Orchestrator) GeneratePrimary(ctx context.Context, prompt string) (string, error) {
	return o.GeneratePrimaryDetailed(ctx, prompt).Text, nil
}

// GenerateDetailed is Generate reporting which providers were tried.
func (o *Orchestrator) GenerateDetailed(ctx context.Context, prompt, provider string) (*Outcome, error) {
	name, err := core.ParseProviderName(provider)
	if err != nil {
		return nil, err
	}
	return o.generate(ctx, prompt, name, provider), nil
}

// GeneratePrimaryDetailed is GeneratePrimary reporting which providers were tried.
func (o *Orchestrator) GeneratePrimaryDetailed(ctx context.Context, prompt string) *Outcome {
	return o.generate(ctx, prompt, o.primary, "")
}

// generate runs name then the fallback order. requested is journaled as the
// caller's choice and is empty for primary calls.
func (o *Orchestrator) generate(ctx context.Context, prompt string, name core.ProviderName, requested string) *Outcome {
	out := &Outcome{}
	tried := make(map[core.ProviderName]bool, len(o.fallback)+1)

	ok := o.try(ctx, name, prompt, out, tried)
	if !ok {
		o.logger.Warn("provider failed, falling back", "provider", name, "err", out.Attempts[0].Error)
		for _, candidate := range o.fallback {
			if tried[candidate] {
				continue
			}
			if ctx.Err() != nil {
				o.logger.Warn("fallback abandoned", "err", ctx.Err())
				break
			}
			if ok = o.try(ctx, candidate, prompt, out, tried); ok {
				break
			}
			last := out.Attempts[len(out.Attempts)-1]
			o.logger.Warn("fallback provider failed", "provider", candidate, "err", last.Error)
		}
	}

	if !ok {
		o.logger.Error("all providers failed", "attempts", len(out.Attempts))
		out.Text = ApologyMessage
		out.Degraded = true
	}

	o.record(ctx, prompt, requested, out)
	return out
}

// try makes one attempt with name and records it in out.
func (o *Orchestrator) try(ctx context.Context, name core.ProviderName, prompt string, out *Outcome, tried map[core.ProviderName]bool) bool {
	tried[name] = true

	text, model, err := o.invoke(ctx, name, prompt)
	attempt := core.Attempt{Provider: string(name)}
	if err != nil {
		attempt.Error = err.Error()
		out.Attempts = append(out.Attempts, attempt)
		return false
	}
	out.Attempts = append(out.Attempts, attempt)
	out.Text = text
	out.Provider = name
	out.Model = model
	return true
}

type result struct {
	text string
	err  error
}

// invoke calls the generator bound to name within the per-attempt budget.
func (o *Orchestrator) invoke(ctx context.Context, name core.ProviderName, prompt string) (string, string, error) {
	gen, ok := o.registry.Lookup(name)
	if !ok {
		return "", "", fmt.Errorf("%s: %w", name, ErrNoBinding)
	}

	actx, cancel := ctx, context.CancelFunc(func() {})
	if o.timeout > 0 {
		actx, cancel = context.WithTimeout(ctx, o.timeout)
	}
	defer cancel()

	// Generators that ignore their context still cannot hold the caller
	// past the budget.
	done := make(chan result, 1)
	go func() {
		text, err := gen.Generate(actx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", gen.Model(), r.err
		}
		return strings.TrimSpace(r.text), gen.Model(), nil
	case <-actx.Done():
		return "", gen.Model(), fmt.Errorf("%s: %w", name, actx.Err())
	}
}

func (o *Orchestrator) record(ctx context.Context, prompt, requested string, out *Outcome) {
	if o.journal == nil {
		return
	}
	rec := &core.GenerationRecord{
		Prompt:    prompt,
		Requested: requested,
		Provider:  string(out.Provider),
		Model:     out.Model,
		Response:  out.Text,
		Attempts:  out.Attempts,
		Degraded:  out.Degraded,
		CreatedAt: time.Now().UTC(),
	}
	// The journal write outlives a cancelled request.
	if _, err := o.journal.AddGenerationRecords(context.WithoutCancel(ctx), rec); err != nil {
		o.logger.Warn("failed to journal generation", "err", err)
	}
}
