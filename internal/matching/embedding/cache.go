// internal/matching/embedding/cache.go
package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"match-workers/internal/common/logger"
	"match-workers/internal/common/metrics"
	"match-workers/internal/models"
)

// Store is the durable embedding layer, one row per entity keyed by
// (entity_type, entity_id) with the content hash as the staleness signal.
type Store interface {
	GetEmbedding(ctx context.Context, entityType, entityID string) (*models.EmbeddingRow, error)
	UpsertEmbedding(ctx context.Context, row models.EmbeddingRow) error
}

// Cache resolves entity vectors through three layers: Redis, Postgres, then
// the provider. Provider failures are absorbed; the caller gets a nil vector
// and scores the pair in degraded mode.
type Cache struct {
	provider Provider
	store    Store
	redis    *redis.Client
	ttl      time.Duration
	enabled  bool
	log      logger.Logger
}

// NewCache wires the layered embedding cache. A nil redis client disables
// the hot layer; enabled=false short-circuits everything to degraded mode.
func NewCache(provider Provider, store Store, redisClient *redis.Client, ttl time.Duration, enabled bool, log logger.Logger) *Cache {
	return &Cache{
		provider: provider,
		store:    store,
		redis:    redisClient,
		ttl:      ttl,
		enabled:  enabled,
		log:      log,
	}
}

// Vector returns the embedding for one entity's text block, or nil when the
// semantic layer is disabled, the text is empty, or the provider cannot be
// reached. A nil vector is never an error for the caller.
func (c *Cache) Vector(ctx context.Context, entityType, entityID, text string) []float64 {
	if !c.enabled || text == "" {
		return nil
	}

	hash := ContentHash(text)

	if vec := c.fromRedis(ctx, entityType, entityID, hash); vec != nil {
		metrics.EmbeddingCacheHits.WithLabelValues("redis").Inc()
		return vec
	}

	if row, err := c.store.GetEmbedding(ctx, entityType, entityID); err != nil {
		c.log.Warn("embedding store lookup failed", map[string]interface{}{
			"entityType": entityType,
			"entityId":   entityID,
			"error":      err.Error(),
		})
	} else if row != nil && row.ContentHash == hash && len(row.Embedding) > 0 {
		metrics.EmbeddingCacheHits.WithLabelValues("postgres").Inc()
		c.toRedis(ctx, entityType, entityID, hash, row.Embedding)
		return row.Embedding
	}

	metrics.EmbeddingCacheMisses.Inc()

	vectors, err := c.provider.Embed(ctx, []string{text})
	if err != nil {
		c.log.Warn("embedding provider call failed, scoring degrades", map[string]interface{}{
			"entityType": entityType,
			"entityId":   entityID,
			"error":      err.Error(),
		})
		return nil
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return nil
	}
	vec := vectors[0]

	row := models.EmbeddingRow{
		EntityType:  entityType,
		EntityID:    entityID,
		ContentHash: hash,
		Embedding:   vec,
		Dimensions:  len(vec),
		Provider:    c.provider.ProviderName(),
		Model:       c.provider.ModelName(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := c.store.UpsertEmbedding(ctx, row); err != nil {
		c.log.Warn("embedding store upsert failed", map[string]interface{}{
			"entityType": entityType,
			"entityId":   entityID,
			"error":      err.Error(),
		})
	}
	c.toRedis(ctx, entityType, entityID, hash, vec)

	return vec
}

func redisKey(entityType, entityID, hash string) string {
	return fmt.Sprintf("emb:%s:%s:%s", entityType, entityID, hash)
}

func (c *Cache) fromRedis(ctx context.Context, entityType, entityID, hash string) []float64 {
	if c.redis == nil {
		return nil
	}
	payload, err := c.redis.Get(ctx, redisKey(entityType, entityID, hash)).Bytes()
	if err != nil {
		return nil
	}
	var vec []float64
	if err := json.Unmarshal(payload, &vec); err != nil || len(vec) == 0 {
		return nil
	}
	return vec
}

func (c *Cache) toRedis(ctx context.Context, entityType, entityID, hash string, vec []float64) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, redisKey(entityType, entityID, hash), payload, c.ttl).Err(); err != nil {
		c.log.Debug("redis embedding set failed", map[string]interface{}{
			"entityType": entityType,
			"entityId":   entityID,
			"error":      err.Error(),
		})
	}
}
