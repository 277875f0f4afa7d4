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


// Package aiosion wires configuration, provider bindings, the NLP pipeline
// and storage into a single Service shared by the CLI and the HTTP server.
package aiosion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/aiosion/ai"
	"github.com/poiesic/aiosion/ai/langchain"
	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/generation"
	"github.com/poiesic/aiosion/nlp"
	"github.com/poiesic/aiosion/nlp/prose"
	"github.com/poiesic/aiosion/server"
	"github.com/poiesic/aiosion/storage"
	"github.com/poiesic/aiosion/storage/badger"
	"github.com/poiesic/aiosion/storage/redis"
)

// Service holds everything built from a Config. It is created once at
// startup and is read-only afterwards.
type Service struct {
	cfg          *config.Config
	registry     *ai.Registry
	ownsRegistry bool
	orchestrator *generation.Orchestrator
	engine       *nlp.Engine
	journal      storage.JournalRepository
	cache        storage.AnalysisCache
	backends     map[string]*badger.Backend
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	registry *ai.Registry
	pipeline nlp.Pipeline
}

// WithRegistry uses registry instead of building langchain bindings from the
// configuration. The caller keeps ownership of registry.
func WithRegistry(registry *ai.Registry) ServiceOption {
	return func(o *serviceOptions) {
		o.registry = registry
	}
}

// WithPipeline uses pipeline instead of loading the configured prose model.
func WithPipeline(pipeline nlp.Pipeline) ServiceOption {
	return func(o *serviceOptions) {
		o.pipeline = pipeline
	}
}

// NewService validates cfg and builds the service. A nil cfg selects
// config.DefaultConfig.
func NewService(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		backends: make(map[string]*badger.Backend),
		logger:   slog.Default().With("component", "service"),
	}
	if err := s.build(ctx, options); err != nil {
		if closeErr := s.Close(); closeErr != nil {
			s.logger.Error("cleanup after failed start", "err", closeErr)
		}
		return nil, err
	}
	return s, nil
}

func (s *Service) build(ctx context.Context, options *serviceOptions) error {
	var err error

	s.registry = options.registry
	if s.registry == nil {
		if s.registry, err = langchain.NewRegistry(ctx, s.cfg); err != nil {
			return err
		}
		s.ownsRegistry = true
	}

	pipeline := options.pipeline
	if pipeline == nil {
		pipeline, err = prose.New(s.cfg.NLP.Model)
		if err != nil {
			s.logger.Warn("nlp pipeline unavailable", "model", s.cfg.NLP.Model, "err", err)
			pipeline = nlp.Unavailable(s.cfg.NLP.Model, err)
		}
	}

	if s.cfg.Journal.Path != "" {
		backend, err := s.backend(s.cfg.Journal.Path)
		if err != nil {
			return err
		}
		if s.journal, err = badger.NewJournal(backend); err != nil {
			return err
		}
	}

	if s.cache, err = s.openCache(ctx); err != nil {
		return err
	}

	engineOpts := []nlp.Option{nlp.WithWorkers(s.cfg.NLP.Workers)}
	if s.cache != nil {
		engineOpts = append(engineOpts, nlp.WithCache(s.cache))
	}
	if s.engine, err = nlp.NewEngine(pipeline, engineOpts...); err != nil {
		return err
	}

	genOpts := []generation.Option{generation.WithTimeout(s.cfg.Generation.Timeout)}
	if s.journal != nil {
		genOpts = append(genOpts, generation.WithJournal(s.journal))
	}
	s.orchestrator, err = generation.NewOrchestrator(s.registry, s.cfg.ModelSelection, genOpts...)
	return err
}

// backend opens the BadgerDB at path once and shares it between the journal
// and the analysis cache.
func (s *Service) backend(path string) (*badger.Backend, error) {
	if b, ok := s.backends[path]; ok {
		return b, nil
	}
	b, err := badger.OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", path, err)
	}
	s.backends[path] = b
	return b, nil
}

func (s *Service) openCache(ctx context.Context) (storage.AnalysisCache, error) {
	c := s.cfg.NLP.Cache
	switch c.Backend {
	case config.CacheBadger:
		backend, err := s.backend(c.Path)
		if err != nil {
			return nil, err
		}
		return badger.NewAnalysisCache(backend, c.TTL), nil
	case config.CacheRedis:
		return redis.NewAnalysisCache(ctx, c.URL, c.TTL)
	default:
		return nil, nil
	}
}

// Config returns the validated configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Registry returns the provider registry.
func (s *Service) Registry() *ai.Registry {
	return s.registry
}

// Generator returns the generation orchestrator.
func (s *Service) Generator() *generation.Orchestrator {
	return s.orchestrator
}

// Analyzer returns the NLP engine.
func (s *Service) Analyzer() *nlp.Engine {
	return s.engine
}

// Journal returns the generation journal, or nil when journaling is disabled.
func (s *Service) Journal() storage.JournalRepository {
	return s.journal
}

// NewServer builds the HTTP transport over the service.
func (s *Service) NewServer(opts ...server.Option) (*server.Server, error) {
	if s.journal != nil {
		opts = append([]server.Option{server.WithHistory(s.journal)}, opts...)
	}
	return server.New(s.cfg.Server, s.orchestrator, s.engine, opts...)
}

// Close releases every resource the service built.
func (s *Service) Close() error {
	var errs []error
	if s.engine != nil {
		s.engine.Release()
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.logger.Error("error closing journal", "err", err)
			errs = append(errs, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing analysis cache", "err", err)
			errs = append(errs, err)
		}
	}
	for _, b := range s.backends {
		if err := b.Close(); err != nil {
			s.logger.Error("error closing backend storage", "path", b.Path(), "err", err)
			errs = append(errs, err)
		}
	}
	if s.ownsRegistry && s.registry != nil {
		if err := s.registry.Close(); err != nil {
			s.logger.Error("error closing providers", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
