package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/migrations"
)

// DB wraps the shared *sql.DB handle together with the backend-specific
// pieces the repositories need: the goose dialect, the squirrel statement
// builder configured with the dialect's placeholder format, and an
// optional driver error classifier.
type DB struct {
	*sql.DB
	dialect         string
	builder         sq.StatementBuilderType
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// Migrate applies all pending schema migrations for this backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
