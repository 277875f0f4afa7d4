package storage

import (
	"context"

	"github.com/poiesic/aiosion/core"
)

// JournalRepository records completed generation requests.
// Implementations must be thread-safe and support concurrent access.
type JournalRepository interface {
	// AddGenerationRecords appends one or more records to the journal.
	// Records with Id=0 get a new ID from the journal's sequence.
	// CreatedAt is set if not already set.
	// Returns the records with IDs and timestamps populated.
	AddGenerationRecords(ctx context.Context, records ...*core.GenerationRecord) ([]*core.GenerationRecord, error)

	// GetGenerationRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetGenerationRecord(ctx context.Context, id core.ID) (*core.GenerationRecord, error)

	// GetRecentGenerationRecords retrieves up to limit records, newest first.
	GetRecentGenerationRecords(ctx context.Context, limit int) ([]*core.GenerationRecord, error)

	// Close closes the journal and releases resources.
	Close() error
}

// AnalysisCache stores analyzed documents keyed by a content ID.
// Implementations must be thread-safe and support concurrent access.
type AnalysisCache interface {
	// GetAnalysis returns the cached document for id.
	// Returns ErrNotFound on a miss.
	GetAnalysis(ctx context.Context, id core.ID) (*core.AnalyzedDocument, error)

	// PutAnalysis stores doc under id, replacing any previous entry.
	PutAnalysis(ctx context.Context, id core.ID, doc *core.AnalyzedDocument) error

	// Close releases resources held by the cache.
	Close() error
}
