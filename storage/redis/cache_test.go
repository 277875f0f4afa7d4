package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not-a-url://", time.Minute)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "aiosion:analysis:42", key(core.ID(42)))
}

func TestCache_Integration(t *testing.T) {
	url := os.Getenv("AIOSION_TEST_REDIS_URL")
	if url == "" {
		t.Skip("AIOSION_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	cache, err := NewAnalysisCache(ctx, url, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	id := core.IDFromContent(t.Name() + time.Now().String())
	_, err = cache.GetAnalysis(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	doc := &core.AnalyzedDocument{
		Tokens:    []core.Token{{Text: "Hi", POS: "INTJ"}},
		Sentences: []string{"Hi"},
		Polarity:  0.5,
	}
	require.NoError(t, cache.PutAnalysis(ctx, id, doc))

	got, err := cache.GetAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
