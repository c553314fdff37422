// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

const syncDocumentsTable = "sync_documents"

// syncDocumentRepository is the SQL-backed implementation of
// [SyncDocumentRepository]. All statements are built with the squirrel
// builder carried by [*DB], so the same code runs against PostgreSQL and
// SQLite.
type syncDocumentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncDocumentRepository constructs a [SyncDocumentRepository] backed
// by the provided database connection and logger.
func NewSyncDocumentRepository(db *DB, logger *logger.Logger) SyncDocumentRepository {
	return &syncDocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the document stored for secretKey.
//
// Returns [ErrDocumentNotFound] when no row exists for the key.
func (p *syncDocumentRepository) Get(ctx context.Context, secretKey string) (models.SyncDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.db.builder.
		Select("content", "version", "last_sync", "created_at", "updated_at").
		From(syncDocumentsTable).
		Where(sq.Eq{"secret_key": secretKey}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "syncDocumentRepository.Get").
			Msg("failed to build select query")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc := models.SyncDocument{SecretKey: secretKey}
	scanErr := p.db.QueryRowContext(ctx, query, args...).Scan(
		&doc.Content,
		&doc.Version,
		&doc.LastSync,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.SyncDocument{}, ErrDocumentNotFound
	}
	if scanErr != nil {
		p.logUnexpected(log, "syncDocumentRepository.Get", scanErr)
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return doc, nil
}

// Exists reports whether a document is stored for secretKey.
func (p *syncDocumentRepository) Exists(ctx context.Context, secretKey string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.db.builder.
		Select("1").
		From(syncDocumentsTable).
		Where(sq.Eq{"secret_key": secretKey}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "syncDocumentRepository.Exists").
			Msg("failed to build select query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	scanErr := p.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return false, nil
	}
	if scanErr != nil {
		p.logUnexpected(log, "syncDocumentRepository.Exists", scanErr)
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return true, nil
}

// Push implements the conditional write described on
// [SyncDocumentRepository].
//
// The accept path is a single guarded UPDATE whose WHERE clause pins the
// expected version; the database applies it atomically, so of two
// concurrent pushes carrying the same clientVersion exactly one matches
// the guard. First-push creation uses INSERT .. ON CONFLICT DO NOTHING so
// a create race likewise produces one winner and one conflict.
func (p *syncDocumentRepository) Push(ctx context.Context, secretKey string, content json.RawMessage, clientVersion int64) (models.SyncDocument, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	query, args, err := p.db.builder.
		Update(syncDocumentsTable).
		Set("content", []byte(content)).
		Set("version", sq.Expr("version + 1")).
		Set("last_sync", now).
		Set("updated_at", now).
		Where(sq.Eq{"secret_key": secretKey, "version": clientVersion}).
		Suffix("RETURNING version, created_at").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "syncDocumentRepository.Push").
			Msg("failed to build guarded update query")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated := models.SyncDocument{
		SecretKey: secretKey,
		Content:   content,
		LastSync:  now,
		UpdatedAt: now,
	}
	scanErr := p.db.QueryRowContext(ctx, query, args...).Scan(&updated.Version, &updated.CreatedAt)
	if scanErr == nil {
		log.Debug().
			Str("func", "syncDocumentRepository.Push").
			Int64("version", updated.Version).
			Msg("accepted push")
		return updated, nil
	}
	if !errors.Is(scanErr, sql.ErrNoRows) {
		p.logUnexpected(log, "syncDocumentRepository.Push", scanErr)
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	// The guard did not match: either the document does not exist yet or
	// the client's version is out of step with the stored one.
	current, getErr := p.Get(ctx, secretKey)
	if errors.Is(getErr, ErrDocumentNotFound) {
		return p.create(ctx, secretKey, content, clientVersion, now)
	}
	if getErr != nil {
		return models.SyncDocument{}, getErr
	}

	return p.rejectStale(log, current, clientVersion)
}

// create inserts the first document for a previously-unseen key at
// version 1. When a concurrent first push wins the insert race, the
// stored document is read back and reported as a conflict.
func (p *syncDocumentRepository) create(ctx context.Context, secretKey string, content json.RawMessage, clientVersion int64, now time.Time) (models.SyncDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.db.builder.
		Insert(syncDocumentsTable).
		Columns("secret_key", "content", "version", "last_sync", "created_at", "updated_at").
		Values(secretKey, []byte(content), 1, now, now, now).
		Suffix("ON CONFLICT (secret_key) DO NOTHING RETURNING version").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "syncDocumentRepository.create").
			Msg("failed to build insert query")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created := models.SyncDocument{
		SecretKey: secretKey,
		Content:   content,
		LastSync:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	scanErr := p.db.QueryRowContext(ctx, query, args...).Scan(&created.Version)
	if scanErr == nil {
		log.Info().
			Str("func", "syncDocumentRepository.create").
			Msg("initial sync document created")
		return created, nil
	}
	if !errors.Is(scanErr, sql.ErrNoRows) {
		p.logUnexpected(log, "syncDocumentRepository.create", scanErr)
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	// Lost the creation race to a concurrent first push.
	current, getErr := p.Get(ctx, secretKey)
	if getErr != nil {
		return models.SyncDocument{}, getErr
	}

	return p.rejectStale(log, current, clientVersion)
}

// rejectStale classifies a push whose guard failed against an existing
// document. Conflicts are routine multi-device behavior and are logged at
// debug level, never as errors.
func (p *syncDocumentRepository) rejectStale(log *logger.Logger, current models.SyncDocument, clientVersion int64) (models.SyncDocument, error) {
	if clientVersion > current.Version {
		log.Warn().
			Str("func", "syncDocumentRepository.Push").
			Int64("db_version", current.Version).
			Int64("provided_version", clientVersion).
			Msg("client claims a version ahead of the server")
		return current, ErrVersionAhead
	}

	log.Debug().
		Str("func", "syncDocumentRepository.Push").
		Int64("db_version", current.Version).
		Int64("provided_version", clientVersion).
		Msg("optimistic lock failed: stale client version")
	return current, ErrVersionConflict
}

// Delete removes the document row entirely (no tombstone). A subsequent
// pull for the key behaves as if the document never existed.
func (p *syncDocumentRepository) Delete(ctx context.Context, secretKey string) error {
	log := logger.FromContext(ctx)

	query, args, err := p.db.builder.
		Delete(syncDocumentsTable).
		Where(sq.Eq{"secret_key": secretKey}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "syncDocumentRepository.Delete").
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, execErr := p.db.ExecContext(ctx, query, args...)
	if execErr != nil {
		p.logUnexpected(log, "syncDocumentRepository.Delete", execErr)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	affected, raErr := res.RowsAffected()
	if raErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, raErr)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	log.Info().
		Str("func", "syncDocumentRepository.Delete").
		Msg("sync document deleted")
	return nil
}

// logUnexpected records an infrastructure-level failure, annotating it
// with the driver classifier's retryability verdict when one is
// configured for this backend.
func (p *syncDocumentRepository) logUnexpected(log *logger.Logger, fn string, err error) {
	ev := log.Err(err).Str("func", fn)
	if p.db.errorClassifier != nil {
		ev = ev.Bool("retryable", p.db.errorClassifier.Classify(err) == Retryable)
	}
	ev.Msg("unexpected database error")
}
