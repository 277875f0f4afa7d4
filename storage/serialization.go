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

package storage

import (
	"fmt"

	"github.com/poiesic/aiosion/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalGenerationRecord serializes a GenerationRecord to bytes.
func MarshalGenerationRecord(record *core.GenerationRecord) []byte {
	buf := make([]byte, core.GenerationRecordMUS.Size(*record))
	core.GenerationRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalGenerationRecord deserializes a GenerationRecord from bytes.
func UnmarshalGenerationRecord(data []byte) (*core.GenerationRecord, error) {
	record, _, err := core.GenerationRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: generation record: %w", ErrSerializationFailed, err)
	}
	// Timestamps decode in the local zone; records are kept in UTC.
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

// MarshalAnalyzedDocument serializes an AnalyzedDocument to bytes.
func MarshalAnalyzedDocument(doc *core.AnalyzedDocument) []byte {
	buf := make([]byte, core.AnalyzedDocumentMUS.Size(*doc))
	core.AnalyzedDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalAnalyzedDocument deserializes an AnalyzedDocument from bytes.
func UnmarshalAnalyzedDocument(data []byte) (*core.AnalyzedDocument, error) {
	doc, _, err := core.AnalyzedDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: analyzed document: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}
