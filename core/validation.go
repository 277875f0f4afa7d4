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

import (
	"fmt"
	"time"
)

// ValidateGenerationRecord validates a GenerationRecord before it is journaled.
//
// Validation rules:
//   - Prompt must not be empty
//   - Requested must be empty or a supported provider
//   - Provider must be empty (degraded) or a supported provider
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - ID (0 is valid, assigned by database sequences)
//   - Attempts (may be empty for records built by hand)
func ValidateGenerationRecord(record *GenerationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidGenerationRecord)
	}

	if record.Prompt == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGenerationRecord, ErrEmptyPrompt)
	}

	if record.Requested != "" && !ProviderName(record.Requested).IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidGenerationRecord, ErrUnsupportedProvider, record.Requested)
	}

	if record.Provider != "" && !ProviderName(record.Provider).IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidGenerationRecord, ErrUnsupportedProvider, record.Provider)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidGenerationRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

// MaxEncodedLength bounds the element count of a decoded slice.
const MaxEncodedLength = 1 << 20

// ValidateLength rejects encoded slice lengths above MaxEncodedLength so a
// corrupt length prefix cannot force a huge allocation.
func ValidateLength(length int) error {
	if length > MaxEncodedLength {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return nil
}
