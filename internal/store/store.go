// Package store persists computed case batches so past runs can be listed
// and re-served without recomputation. Two backends are provided: SQLite for
// local use and Postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/qmat-labs/corridor-cli/internal/compute"
)

// Run is one persisted compute batch. ListRuns returns runs without Rows;
// GetRun hydrates them.
type Run struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	RowCount  int           `json:"row_count"`
	Rows      []compute.Row `json:"rows,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store defines the persistence interface for computed runs.
type Store interface {
	SaveRun(ctx context.Context, source string, rows []compute.Row) (*Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a migrated Store for the configured driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "sqlite", "":
		if dsn == "" {
			dsn = "corridor.db"
		}
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
