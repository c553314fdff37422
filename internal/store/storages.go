// Package store implements the durable document store of the sync
// service. One repository serves both supported backends (PostgreSQL and
// SQLite): per-dialect differences are confined to the connection
// constructors and the squirrel placeholder format.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
)

// Storages aggregates all repositories backed by the shared database
// handle and owns the handle's lifecycle.
type Storages struct {
	SyncDocuments SyncDocumentRepository

	db *DB
}

// NewStorages connects to the backend selected by the DSN scheme, applies
// pending migrations, and constructs all repositories.
//
// A "postgres://" or "postgresql://" DSN opens PostgreSQL; everything
// else is treated as a SQLite file path.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	dsn := cfg.DB.DSN
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		SyncDocuments: NewSyncDocumentRepository(db, log),
		db:            db,
	}, nil
}

// Ping verifies storage connectivity. Used by the health reporter.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
