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

// Package storage provides the persistence abstractions for aiosion.
//
// Two optional stores sit behind the core operations:
//
//   - JournalRepository: an append-only record of completed generation
//     requests, including every provider attempt and degraded outcomes
//   - AnalysisCache: analyzed documents keyed by a content ID, so repeated
//     NLP requests for the same text skip the pipeline
//
// Neither store is required. When they are absent, or when they fail, the
// core operations behave exactly as they would without them.
//
// # Implementations
//
//   - storage/badger: embedded BadgerDB journal and cache
//   - storage/redis: shared cache for multi-instance deployments
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface types to keep callers decoupled
// from a particular backend:
//
//	journal, err := badger.NewJournal(backend)  // returns storage.JournalRepository
//
// Internal constructors (newJournal, newBackend) return concrete types.
//
// # Serialization
//
// Records are stored in the MUS binary format using the serializers in the
// core package. MarshalGenerationRecord and MarshalAnalyzedDocument wrap them
// for use as key/value payloads.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
