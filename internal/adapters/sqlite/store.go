// Package sqlite contains SQLite implementations of the repository
// interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/obras/internal/ports/secondary"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repositories work inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements secondary.Store over SQLite.
type Store struct {
	db *sql.DB // nil when the store is bound to a transaction
	q  DBTX
}

// NewStore creates a store over the given connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

// Lookups returns the lookup repository bound to this store's unit of work.
func (s *Store) Lookups() secondary.LookupRepository {
	return &LookupRepository{q: s.q}
}

// Works returns the work repository bound to this store's unit of work.
func (s *Store) Works() secondary.WorkRepository {
	return &WorkRepository{q: s.q}
}

// Reports returns the report repository bound to this store's unit of work.
func (s *Store) Reports() secondary.ReportRepository {
	return &ReportRepository{q: s.q}
}

// WithinTx runs fn against a store bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise, so a partially
// resolved row never leaves orphaned lookup rows behind. Nested calls reuse
// the enclosing transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(secondary.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Store{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
