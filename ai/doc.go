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

// Package ai provides the text-generation abstractions used by aiosion.
//
// Every supported provider (openai, anthropic, google, huggingface) is bound
// once at startup to a Generator. The bindings are collected into an immutable
// Registry which the generation orchestrator consults by provider name. The
// registry is never mutated after construction, so it can be read from any
// number of goroutines without locking.
//
// # Implementation Packages
//
//   - ai/langchain: production bindings built on langchaingo clients
//   - ai/mock: test doubles for unit testing without network access
//
// # Unavailable providers
//
// A provider whose client cannot be constructed (typically a missing API key)
// is bound to Unavailable. The process still starts and the provider takes
// part in fallback as a candidate that always fails with
// ErrProviderUnavailable.
//
// # Usage Example
//
//	reg, err := langchain.NewRegistry(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
//	gen, ok := reg.Lookup(core.ProviderAnthropic)
//	if ok {
//	    text, err := gen.Generate(ctx, "Write a haiku about rivers")
//	}
package ai
