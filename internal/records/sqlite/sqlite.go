// Package sqlite provides the sqlite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"spendsight/internal/core"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements records.Store. Amounts are stored as decimal text to
// keep them exact across the round trip.
func (s *Store) Append(ctx context.Context, userID string, r core.ExpenseRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	const q = `INSERT INTO records (id, user_id, amount, category, description, date)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q,
		id, userID, r.Amount.String(), r.CategoryOrDefault(), r.Description,
		r.Date.UTC().Format(time.RFC3339),
	); err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

// ListRecent implements records.Store.
func (s *Store) ListRecent(ctx context.Context, userID string, since time.Time, limit int) ([]core.ExpenseRecord, error) {
	const q = `SELECT id, amount, category, description, date
	           FROM records
	           WHERE user_id = ? AND date >= ?
	           ORDER BY date DESC
	           LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, userID, since.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			r       core.ExpenseRecord
			amount  string
			rawDate string
		)
		if err := rows.Scan(&r.ID, &amount, &r.Category, &r.Description, &rawDate); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Amount = core.ParseAmount(amount)
		if t, err := time.Parse(time.RFC3339, rawDate); err == nil {
			r.Date = t
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
