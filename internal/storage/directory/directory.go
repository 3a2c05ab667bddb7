// Package directory picks the subcontractor directory backend.
package directory

import (
	"context"
	"fmt"

	"effort-planner/internal/config"
	"effort-planner/internal/storage"
	"effort-planner/internal/storage/memory"
	"effort-planner/internal/storage/sqlstore"
)

type Directory interface {
	Subcontractors(ctx context.Context) ([]storage.Subcontractor, error)
	SaveSubcontractor(ctx context.Context, sub storage.Subcontractor) error
	Close() error
}

// Open returns the backend named by cfg.Driver, seeded with the default
// subcontractors when it starts empty.
func Open(ctx context.Context, cfg config.Directory) (Directory, error) {
	seed := storage.DefaultSubcontractors()

	switch cfg.Driver {
	case "", "memory":
		return memory.New(seed), nil
	case "mysql", "sqlite":
		s, err := sqlstore.New(ctx, cfg.Driver, cfg.DSN, seed)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("directory.Open: unknown driver %q", cfg.Driver)
	}
}
