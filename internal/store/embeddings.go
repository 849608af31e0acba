// internal/store/embeddings.go
package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

// GetEmbedding returns the cached vector row for an entity, or nil when none
// has been stored yet. The caller compares content hashes to decide reuse.
func (s *Store) GetEmbedding(ctx context.Context, entityType, entityID string) (*models.EmbeddingRow, error) {
	query := `
		SELECT entity_type, entity_id, content_hash, embedding, dimensions,
		       provider, model, updated_at
		FROM matching_text_embeddings
		WHERE entity_type = $1 AND entity_id = $2`

	var row models.EmbeddingRow
	err := s.db.QueryRowContext(ctx, query, entityType, entityID).Scan(
		&row.EntityType, &row.EntityID, &row.ContentHash,
		pq.Array(&row.Embedding), &row.Dimensions, &row.Provider,
		&row.Model, &row.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetEmbedding", err)
	}
	return &row, nil
}

// UpsertEmbedding stores a freshly computed vector, replacing any previous
// row for the entity.
func (s *Store) UpsertEmbedding(ctx context.Context, row models.EmbeddingRow) error {
	query := `
		INSERT INTO matching_text_embeddings
			(entity_type, entity_id, content_hash, embedding, dimensions,
			 provider, model, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			content_hash = EXCLUDED.content_hash,
			embedding = EXCLUDED.embedding,
			dimensions = EXCLUDED.dimensions,
			provider = EXCLUDED.provider,
			model = EXCLUDED.model,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		row.EntityType, row.EntityID, row.ContentHash, pq.Array(row.Embedding),
		row.Dimensions, row.Provider, row.Model, row.UpdatedAt,
	)
	if err != nil {
		return errors.NewQueryExecutionFailedError("UpsertEmbedding", err)
	}
	return nil
}
