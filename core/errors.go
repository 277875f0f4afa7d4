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

package core

import "errors"

// Domain errors
var (
	// ErrUnsupportedProvider indicates a provider name outside the supported set.
	// It is a caller error and is never retried or recovered by fallback.
	ErrUnsupportedProvider = errors.New("unsupported model")

	// ErrInvalidGenerationRecord indicates a GenerationRecord failed validation.
	ErrInvalidGenerationRecord = errors.New("invalid generation record")

	// ErrEmptyPrompt indicates the Prompt field is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidLength indicates an encoded slice or string length is out of range.
	ErrInvalidLength = errors.New("invalid encoded length")
)
