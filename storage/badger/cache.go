package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
)

// AnalysisCache implements storage.AnalysisCache for BadgerDB.
type AnalysisCache struct {
	backend *Backend
	ttl     time.Duration
}

var _ storage.AnalysisCache = (*AnalysisCache)(nil)

// NewAnalysisCache creates an analysis cache on backend. Entries expire after
// ttl; a zero ttl keeps them until overwritten.
// Closing the cache does not close the backend.
func NewAnalysisCache(backend *Backend, ttl time.Duration) storage.AnalysisCache {
	return &AnalysisCache{backend: backend, ttl: ttl}
}

// GetAnalysis returns the cached document for id.
func (c *AnalysisCache) GetAnalysis(ctx context.Context, id core.ID) (*core.AnalyzedDocument, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var doc *core.AnalyzedDocument
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAnalysisKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			doc, unmarshalErr = storage.UnmarshalAnalyzedDocument(val)
			return unmarshalErr
		})
	}, false)
	return doc, err
}

// PutAnalysis stores doc under id.
func (c *AnalysisCache) PutAnalysis(ctx context.Context, id core.ID, doc *core.AnalyzedDocument) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeAnalysisKey(id), storage.MarshalAnalyzedDocument(doc))
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend is owned by the caller.
func (c *AnalysisCache) Close() error {
	return nil
}
