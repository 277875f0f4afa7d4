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

package nlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
)

// DefaultSummaryRatio is the share of sentences Summarize keeps by default.
const DefaultSummaryRatio = 0.2

// ErrPipelineRequired is returned when NewEngine is given no pipeline.
var ErrPipelineRequired = errors.New("nlp pipeline is required")

// Engine derives NLP results from a Pipeline.
type Engine struct {
	pipeline Pipeline
	pool     *ants.Pool
	cache    storage.AnalysisCache
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWorkers sets the worker pool size. Values below 1 select runtime.NumCPU().
func WithWorkers(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = runtime.NumCPU()
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size, ants.WithNonblocking(true))
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithCache serves repeated analyses from cache.
func WithCache(cache storage.AnalysisCache) Option {
	return func(e *Engine) error {
		e.cache = cache
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "nlp")
		return nil
	}
}

// NewEngine creates an engine over pipeline.
func NewEngine(pipeline Pipeline, opts ...Option) (*Engine, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	pool, err := ants.NewPool(runtime.NumCPU(), ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		pipeline: pipeline,
		pool:     pool,
		logger:   slog.Default().With("component", "nlp"),
	}
	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}
	return e, nil
}

// Pipeline returns the pipeline the engine runs.
func (e *Engine) Pipeline() Pipeline {
	return e.pipeline
}

// Release frees the worker pool. The engine should not be used afterwards.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

type analysis struct {
	doc *core.AnalyzedDocument
	err error
}

// analyze obtains the document for text, from the cache or from one
// pipeline run on the worker pool.
func (e *Engine) analyze(ctx context.Context, text string) (*core.AnalyzedDocument, error) {
	key := core.IDFromContent(e.pipeline.Name() + text)
	if e.cache != nil {
		doc, err := e.cache.GetAnalysis(ctx, key)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("analysis cache read failed", "err", err)
		}
	}

	done := make(chan analysis, 1)
	err := e.submit(ctx, func() {
		defer func() {
			if r := recover(); r != nil {
				done <- analysis{err: fmt.Errorf("pipeline panic: %v", r)}
			}
		}()
		doc, err := e.pipeline.Analyze(ctx, text)
		done <- analysis{doc: doc, err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("submit analysis: %w", err)
	}

	var res analysis
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}
	if res.doc == nil {
		return nil, errors.New("pipeline returned no document")
	}

	if e.cache != nil {
		if err := e.cache.PutAnalysis(ctx, key, res.doc); err != nil {
			e.logger.Warn("analysis cache write failed", "err", err)
		}
	}
	return res.doc, nil
}

// submitRetry is the pause between submissions while every worker is busy.
const submitRetry = 5 * time.Millisecond

// submit hands task to the pool, waiting for a free worker until ctx is done.
func (e *Engine) submit(ctx context.Context, task func()) error {
	for {
		err := e.pool.Submit(task)
		if !errors.Is(err, ants.ErrPoolOverload) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(submitRetry):
		}
	}
}

// Tokenize returns the text of every token in document order.
func (e *Engine) Tokenize(ctx context.Context, text string) []string {
	doc, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Error("tokenize failed", "err", err)
		return []string{}
	}
	tokens := make([]string, len(doc.Tokens))
	for i, t := range doc.Tokens {
		tokens[i] = t.Text
	}
	return tokens
}

// POSTag returns (token, coarse part-of-speech) pairs in document order.
func (e *Engine) POSTag(ctx context.Context, text string) []core.WordTag {
	doc, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Error("pos tagging failed", "err", err)
		return []core.WordTag{}
	}
	tags := make([]core.WordTag, len(doc.Tokens))
	for i, t := range doc.Tokens {
		tags[i] = core.WordTag{Word: t.Text, Tag: t.POS}
	}
	return tags
}

// NamedEntities returns (surface text, label) pairs in the order the
// pipeline reported them.
func (e *Engine) NamedEntities(ctx context.Context, text string) []core.EntityLabel {
	doc, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Error("named entity recognition failed", "err", err)
		return []core.EntityLabel{}
	}
	entities := make([]core.EntityLabel, len(doc.Entities))
	for i, ent := range doc.Entities {
		entities[i] = core.EntityLabel{Entity: ent.Text, Label: ent.Label}
	}
	return entities
}

// SentimentAnalysis passes the document polarity through and computes
// subjectivity as the share of stopword tokens.
func (e *Engine) SentimentAnalysis(ctx context.Context, text string) core.SentimentRecord {
	doc, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Error("sentiment analysis failed", "err", err)
		return core.SentimentRecord{}
	}
	return core.SentimentRecord{
		Polarity:     doc.Polarity,
		Subjectivity: subjectivity(doc.Tokens),
	}
}

func subjectivity(tokens []core.Token) float64 {
	if len(tokens) == 0 {
		return 0.0
	}
	stop := 0
	for _, t := range tokens {
		if t.IsStop {
			stop++
		}
	}
	return float64(stop) / float64(len(tokens))
}

// Summarize returns the leading sentences of text, keeping
// max(1, round(N*ratio)) of the N sentences, joined by a single space.
func (e *Engine) Summarize(ctx context.Context, text string, ratio float64) string {
	doc, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Error("summarization failed", "err", err)
		return ""
	}
	n := len(doc.Sentences)
	if n == 0 {
		return ""
	}
	return strings.Join(doc.Sentences[:summaryLength(n, ratio)], " ")
}

// summaryLength rounds half to even and clamps the result to [1, n].
func summaryLength(n int, ratio float64) int {
	x := math.RoundToEven(float64(n) * ratio)
	switch {
	case math.IsNaN(x) || x < 1:
		return 1
	case x < float64(n):
		return int(x)
	default:
		return n
	}
}
