// Package sqlstore keeps the subcontractor directory in MySQL or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"effort-planner/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS subcontractors (
		name       VARCHAR(191) NOT NULL PRIMARY KEY,
		sort_order INTEGER      NOT NULL DEFAULT 0,
		is_active  BOOLEAN      NOT NULL DEFAULT TRUE
	)`

type Storage struct {
	db *sql.DB
}

// New opens driver ("mysql" or "sqlite") at dsn and makes sure the
// directory table exists. An empty table is seeded.
func New(ctx context.Context, driver, dsn string, seed []storage.Subcontractor) (*Storage, error) {
	const op = "storage.sqlstore.New"

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping %s: %w", op, driver, err)
	}

	s := &Storage{db: db}
	if err := s.init(ctx, seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) init(ctx context.Context, seed []storage.Subcontractor) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subcontractors`).Scan(&n); err != nil {
		return fmt.Errorf("count subcontractors: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, sub := range seed {
		if err := s.SaveSubcontractor(ctx, sub); err != nil {
			return fmt.Errorf("seed %q: %w", sub.Name, err)
		}
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
