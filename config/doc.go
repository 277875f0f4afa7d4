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

// Package config loads and validates the aiosion configuration file.
//
// The configuration is a YAML document describing the generation providers
// (API-key reference and default model per provider), the provider selection
// policy (primary provider and fallback order), the NLP pipeline, and the
// optional journal, cache, and HTTP server settings.
//
// # Loading
//
// Load reads the file, validates its raw shape against an embedded JSON
// schema, decodes it over DefaultConfig, applies environment overrides, and
// finally runs Validate. Any failure is returned to the caller, who is
// expected to treat it as fatal:
//
//	cfg, err := config.Load("config/config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # API keys
//
// Provider API keys are never stored in the file. Each provider carries a
// reference to an environment variable (for example "${OPENAI_API_KEY}")
// which ResolveAPIKey expands at startup.
//
// # Programmatic construction
//
// Tests and embedders can build a Config without a file:
//
//	cfg := config.NewConfig(
//	    config.WithPrimary(core.ProviderAnthropic),
//	    config.WithFallbackOrder(core.ProviderAnthropic, core.ProviderOpenAI),
//	)
//
// A Config is read-only once it has been handed to a service.
package config
