package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WordStore reads and writes the dictionary table.
type WordStore struct{ db *sql.DB }

// NewWordStore wraps a database opened with Open.
func NewWordStore(db *sql.DB) *WordStore { return &WordStore{db: db} }

// Replace swaps the stored dictionary for list, keeping list order.
// Duplicates after the first occurrence are skipped.
func (s *WordStore) Replace(ctx context.Context, list []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return 0, fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(position, word) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for i, w := range list {
		res, err := stmt.ExecContext(ctx, i, w)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if c, _ := res.RowsAffected(); c > 0 {
			n++
		}
	}
	return n, tx.Commit()
}

// List returns the stored dictionary in position order.
func (s *WordStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
