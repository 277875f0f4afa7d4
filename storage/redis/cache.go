// Package redis provides a Redis-backed storage.AnalysisCache, for
// deployments where several aiosion instances share analysis results.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "aiosion:analysis:"

// Cache implements storage.AnalysisCache on Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.AnalysisCache = (*Cache)(nil)

// New connects to the Redis server at url. Entries expire after ttl; a zero
// ttl keeps them until evicted.
func New(url string, ttl time.Duration) (*Cache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Cache{client: redis.NewClient(opt), ttl: ttl}, nil
}

// NewAnalysisCache connects to Redis and verifies the connection.
//
// Returns storage.AnalysisCache interface to enforce abstraction.
func NewAnalysisCache(ctx context.Context, url string, ttl time.Duration) (storage.AnalysisCache, error) {
	c, err := New(url, ttl)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return c, nil
}

func key(id core.ID) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetAnalysis returns the cached document for id.
func (c *Cache) GetAnalysis(ctx context.Context, id core.ID) (*core.AnalyzedDocument, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return storage.UnmarshalAnalyzedDocument(data)
}

// PutAnalysis stores doc under id.
func (c *Cache) PutAnalysis(ctx context.Context, id core.ID, doc *core.AnalyzedDocument) error {
	return c.client.Set(ctx, key(id), storage.MarshalAnalyzedDocument(doc), c.ttl).Err()
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.client.Close()
}
