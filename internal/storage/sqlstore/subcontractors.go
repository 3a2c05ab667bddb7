package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"effort-planner/internal/storage"
)

func (s *Storage) Subcontractors(ctx context.Context) ([]storage.Subcontractor, error) {
	const op = "storage.sqlstore.Subcontractors"

	stmt := `SELECT name, sort_order, is_active FROM subcontractors WHERE is_active = TRUE ORDER BY sort_order, name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var subs []storage.Subcontractor
	for rows.Next() {
		var sub storage.Subcontractor
		if err := rows.Scan(&sub.Name, &sub.SortOrder, &sub.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}

	return subs, nil
}

// SaveSubcontractor updates the entry with the same name or inserts it.
func (s *Storage) SaveSubcontractor(ctx context.Context, sub storage.Subcontractor) error {
	const op = "storage.sqlstore.SaveSubcontractor"

	if err := sub.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM subcontractors WHERE name = ?`, sub.Name).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO subcontractors (name, sort_order, is_active) VALUES (?, ?, ?)`,
			sub.Name, sub.SortOrder, sub.IsActive)
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE subcontractors SET sort_order = ?, is_active = ? WHERE name = ?`,
			sub.SortOrder, sub.IsActive, sub.Name)
	}
	if err != nil {
		return fmt.Errorf("%s: %q: %w", op, sub.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
