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

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/aiosion/core"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, the prompt is echoed back prefixed by the provider name.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	name  core.ProviderName
	model string

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator creates a mock generator bound to the named provider.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator(name core.ProviderName, model string) *MockGenerator {
	return &MockGenerator{name: name, model: model}
}

// NewFailingGenerator creates a mock generator whose every call fails with err.
func NewFailingGenerator(name core.ProviderName, err error) *MockGenerator {
	return NewMockGenerator(name, "failing").WithGenerateFunc(
		func(ctx context.Context, prompt string) (string, error) {
			return "", err
		})
}

// WithGenerateFunc sets custom behavior for Generate.
func (m *MockGenerator) WithGenerateFunc(fn func(ctx context.Context, prompt string) (string, error)) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = fn
	return m
}

// Generate records the call and returns the configured result.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return fmt.Sprintf("%s says: %s", m.name, prompt), nil
}

// Name returns the provider name.
func (m *MockGenerator) Name() core.ProviderName {
	return m.name
}

// Model returns the model identifier.
func (m *MockGenerator) Model() string {
	return m.model
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns the prompts received, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded calls and custom behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.GenerateFunc = nil
}
