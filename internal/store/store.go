// internal/store/store.go

// Package store holds all SQL access for the match engine: source entities,
// persisted match scores, cached embeddings and the recompute queue.
package store

import (
	"database/sql"

	"match-workers/internal/common/logger"
)

// Store wraps the shared *sql.DB. All methods take a context and return
// plain model structs; no SQL leaks past this package.
type Store struct {
	db  *sql.DB
	log logger.Logger
}

// New creates a Store on an open database handle.
func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}
