// Package mock provides a test double for nlp.Pipeline.
package mock

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/poiesic/aiosion/core"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "is": true, "it": true,
	"of": true, "the": true, "to": true, "was": true,
}

// MockPipeline is a test double for nlp.Pipeline.
// It allows custom behavior injection via function fields.
type MockPipeline struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, a whitespace tokenizer with sentence splitting on . ! ? is used.
	AnalyzeFunc func(ctx context.Context, text string) (*core.AnalyzedDocument, error)

	mu        sync.Mutex
	callCount int
}

// NewMockPipeline creates a mock pipeline with the default behavior.
func NewMockPipeline() *MockPipeline {
	return &MockPipeline{}
}

// WithAnalyzeFunc sets custom behavior for Analyze.
func (m *MockPipeline) WithAnalyzeFunc(fn func(ctx context.Context, text string) (*core.AnalyzedDocument, error)) *MockPipeline {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyzeFunc = fn
	return m
}

// Analyze records the call and returns the configured result.
func (m *MockPipeline) Analyze(ctx context.Context, text string) (*core.AnalyzedDocument, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.AnalyzeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return Analyze(text), nil
}

// Name identifies the mock.
func (m *MockPipeline) Name() string {
	return "mock"
}

// CallCount returns the number of times Analyze was called.
func (m *MockPipeline) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom behavior.
func (m *MockPipeline) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.AnalyzeFunc = nil
}

// Analyze is the default deterministic analysis. Every token is tagged X,
// capitalized tokens after the first are reported as PERSON entities.
func Analyze(text string) *core.AnalyzedDocument {
	doc := &core.AnalyzedDocument{}
	for i, field := range strings.Fields(text) {
		word := strings.TrimRightFunc(field, unicode.IsPunct)
		if word == "" {
			word = field
		}
		doc.Tokens = append(doc.Tokens, core.Token{
			Text:   word,
			POS:    "X",
			IsStop: stopwords[strings.ToLower(word)],
		})
		if i > 0 && unicode.IsUpper([]rune(word)[0]) {
			doc.Entities = append(doc.Entities, core.Entity{Text: word, Label: "PERSON"})
		}
	}

	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				doc.Sentences = append(doc.Sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		doc.Sentences = append(doc.Sentences, s)
	}
	return doc
}
