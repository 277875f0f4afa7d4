package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
)

// Journal implements storage.JournalRepository for BadgerDB.
type Journal struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.JournalRepository = (*Journal)(nil)

// newJournal is the internal constructor returning the concrete type.
func newJournal(backend *Backend) (*Journal, error) {
	idSeq, err := backend.GetSequence(generationRecordIDSeq)
	if err != nil {
		return nil, err
	}
	return &Journal{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// NewJournal creates a generation journal on backend.
// Closing the journal does not close the backend.
func NewJournal(backend *Backend) (storage.JournalRepository, error) {
	return newJournal(backend)
}

// Close releases the ID sequence.
func (j *Journal) Close() error {
	return j.idSeq.Release()
}

func (j *Journal) nextID() (core.ID, error) {
	nextID, err := j.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		if nextID, err = j.idSeq.Next(); err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// AddGenerationRecords appends records to the journal.
func (j *Journal) AddGenerationRecords(ctx context.Context, records ...*core.GenerationRecord) ([]*core.GenerationRecord, error) {
	if j.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	for _, record := range records {
		if err := core.ValidateGenerationRecord(record); err != nil {
			return nil, err
		}
	}

	err := j.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if record.Id == 0 {
				id, err := j.nextID()
				if err != nil {
					return err
				}
				record.Id = id
			}
			if record.CreatedAt.IsZero() {
				record.CreatedAt = time.Now().UTC()
			}

			if err := tx.Set(makeGenerationRecordKey(record.Id), storage.MarshalGenerationRecord(record)); err != nil {
				return err
			}
			dateKey := makeGenerationDateKey(record.CreatedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, fmt.Errorf("add generation records: %w", err)
	}
	return records, nil
}

// GetGenerationRecord retrieves a single record by ID.
func (j *Journal) GetGenerationRecord(ctx context.Context, id core.ID) (*core.GenerationRecord, error) {
	var result *core.GenerationRecord
	err := j.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = j.readGenerationRecord(tx, makeGenerationRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecentGenerationRecords retrieves up to limit records, newest first.
func (j *Journal) GetRecentGenerationRecords(ctx context.Context, limit int) ([]*core.GenerationRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	var results []*core.GenerationRecord
	err := j.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeGenerationDatePrefix()
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration must start past the last key carrying the prefix.
		seek := append(append([]byte{}, prefix...), 0xff)
		for iter.Seek(seek); iter.ValidForPrefix(prefix) && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := j.readGenerationRecord(tx, makeGenerationRecordKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// readGenerationRecord reads a record from the transaction.
// Returns nil without error when the key doesn't exist.
func (j *Journal) readGenerationRecord(tx *badger.Txn, key []byte) (*core.GenerationRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.GenerationRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalGenerationRecord(val)
		return unmarshalErr
	})
	return record, err
}
