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

// Package langchain binds the supported text-generation providers to
// ai.Generator using the langchaingo clients.
//
// Each provider gets its own client and its own prompt framing:
//
//   - openai and google receive the prompt as a single human chat turn
//   - anthropic receives the prompt wrapped as a human turn
//   - huggingface receives the bare prompt as a text-generation input
//
// All providers share the fixed ai.MaxOutputTokens budget.
//
// # Usage
//
//	cfg, err := config.Load("config/config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg, err := langchain.NewRegistry(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
// Providers whose client cannot be built (for example because the API key
// environment variable is unset) are bound to ai.Unavailable so the process
// still starts.
package langchain
