// Package store persists facilities, survey records, region summaries, and
// the bed inventory. Every batch write is an idempotent natural-key upsert:
// re-running a load produces identical rows, and a conflicting row has all
// non-key fields overwritten. Fixed-shape statements live as embedded SQL in
// internal/sql; queries with optional filters are built with squirrel.
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx pool with the loader's persistence operations.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
