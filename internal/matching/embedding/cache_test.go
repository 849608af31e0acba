package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-workers/internal/common/errors"
	"match-workers/internal/common/logger"
	"match-workers/internal/models"
)

// ==========================
// Test Fakes
// ==========================

type fakeProvider struct {
	vector []float64
	err    error
	calls  int
}

func (p *fakeProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = p.vector
	}
	return out, nil
}

func (p *fakeProvider) Dimensions() int      { return len(p.vector) }
func (p *fakeProvider) ProviderName() string { return "fake" }
func (p *fakeProvider) ModelName() string    { return "fake-model" }

type fakeStore struct {
	rows    map[string]*models.EmbeddingRow
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*models.EmbeddingRow)}
}

func (s *fakeStore) GetEmbedding(ctx context.Context, entityType, entityID string) (*models.EmbeddingRow, error) {
	return s.rows[entityType+"/"+entityID], nil
}

func (s *fakeStore) UpsertEmbedding(ctx context.Context, row models.EmbeddingRow) error {
	s.upserts++
	s.rows[row.EntityType+"/"+row.EntityID] = &row
	return nil
}

func newTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// ==========================
// Cache Resolution Tests
// ==========================

func TestCache_MissCallsProviderAndStores(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2, 0.3}}
	store := newFakeStore()
	cache := NewCache(provider, store, newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())

	vec := cache.Vector(context.Background(), "job", "job-1", "otr tanker position")

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, store.upserts)

	row := store.rows["job/job-1"]
	require.NotNil(t, row)
	assert.Equal(t, ContentHash("otr tanker position"), row.ContentHash)
	assert.Equal(t, "fake", row.Provider)
	assert.Equal(t, 3, row.Dimensions)
}

func TestCache_UnchangedTextReusesVectorWithoutProviderCall(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.5, 0.5}}
	store := newFakeStore()
	cache := NewCache(provider, store, newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())

	first := cache.Vector(context.Background(), "job", "job-1", "same text")
	second := cache.Vector(context.Background(), "job", "job-1", "same text")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second lookup must hit a cache layer")
}

func TestCache_PostgresLayerServesWhenRedisIsCold(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.9}}
	store := newFakeStore()
	text := "cached entity text"
	store.rows["driver_profile/drv-1"] = &models.EmbeddingRow{
		EntityType:  "driver_profile",
		EntityID:    "drv-1",
		ContentHash: ContentHash(text),
		Embedding:   []float64{0.4, 0.6},
	}
	cache := NewCache(provider, store, newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())

	vec := cache.Vector(context.Background(), "driver_profile", "drv-1", text)

	assert.Equal(t, []float64{0.4, 0.6}, vec)
	assert.Equal(t, 0, provider.calls)
}

func TestCache_ChangedTextInvalidatesStoredVector(t *testing.T) {
	provider := &fakeProvider{vector: []float64{1, 0}}
	store := newFakeStore()
	store.rows["job/job-1"] = &models.EmbeddingRow{
		EntityType:  "job",
		EntityID:    "job-1",
		ContentHash: ContentHash("old text"),
		Embedding:   []float64{0, 1},
	}
	cache := NewCache(provider, store, newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())

	vec := cache.Vector(context.Background(), "job", "job-1", "new text")

	assert.Equal(t, []float64{1, 0}, vec)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, ContentHash("new text"), store.rows["job/job-1"].ContentHash)
}

// ==========================
// Degraded Mode Tests
// ==========================

func TestCache_ProviderFailureYieldsNilVector(t *testing.T) {
	provider := &fakeProvider{err: errors.NewEmbeddingUnavailableError(assert.AnError)}
	cache := NewCache(provider, newFakeStore(), newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())

	vec := cache.Vector(context.Background(), "job", "job-1", "some text")

	assert.Nil(t, vec)
}

func TestCache_DisabledOrEmptyTextShortCircuits(t *testing.T) {
	provider := &fakeProvider{vector: []float64{1}}

	disabled := NewCache(provider, newFakeStore(), newTestRedis(t), time.Hour, false, logger.NewNoOpLogger())
	assert.Nil(t, disabled.Vector(context.Background(), "job", "job-1", "text"))

	enabled := NewCache(provider, newFakeStore(), newTestRedis(t), time.Hour, true, logger.NewNoOpLogger())
	assert.Nil(t, enabled.Vector(context.Background(), "job", "job-1", ""))

	assert.Equal(t, 0, provider.calls)
}

func TestCache_NilRedisStillWorks(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.2, 0.8}}
	cache := NewCache(provider, newFakeStore(), nil, time.Hour, true, logger.NewNoOpLogger())

	vec := cache.Vector(context.Background(), "lead", "lead-1", "lead text")
	assert.Equal(t, []float64{0.2, 0.8}, vec)
}
