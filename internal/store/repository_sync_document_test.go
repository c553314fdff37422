package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
)

func newTestSyncRepo(t *testing.T) (*syncDocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &syncDocumentRepository{
		db: &DB{
			DB:      db,
			builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			logger:  l,
		},
		logger: l,
	}
	return repo, mock, db
}

func TestGet_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	content := []byte(`{"notes":[]}`)

	rows := sqlmock.
		NewRows([]string{"content", "version", "last_sync", "created_at", "updated_at"}).
		AddRow(content, int64(3), now, now, now)

	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WithArgs("sufficiently-long-key").
		WillReturnRows(rows)

	doc, err := repo.Get(context.Background(), "sufficiently-long-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != 3 {
		t.Errorf("expected version 3, got %d", doc.Version)
	}
	if doc.SecretKey != "sufficiently-long-key" {
		t.Errorf("expected secret key to be carried over, got %q", doc.SecretKey)
	}
	if string(doc.Content) != string(content) {
		t.Errorf("expected content %s, got %s", content, doc.Content)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WithArgs("missing-key").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing-key")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGet_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnError(errors.New("db network error"))

	_, err := repo.Get(context.Background(), "some-key")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected wrapped ErrScanningRow, got %v", err)
	}
}

func TestExists_TrueAndFalse(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM sync_documents").
		WithArgs("present").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), "present")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected Exists to report true")
	}

	mock.ExpectQuery("SELECT 1 FROM sync_documents").
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	ok, err = repo.Exists(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected Exists to report false")
	}
}

func TestPush_AcceptedWhenVersionMatches(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	created := time.Now().UTC().Add(-time.Hour)
	content := json.RawMessage(`{"notes":["a"]}`)

	mock.ExpectQuery("UPDATE sync_documents").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "the-key", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"version", "created_at"}).AddRow(int64(3), created))

	doc, err := repo.Push(context.Background(), "the-key", content, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != 3 {
		t.Errorf("expected incremented version 3, got %d", doc.Version)
	}
	if !doc.CreatedAt.Equal(created) {
		t.Errorf("expected created_at preserved from the row, got %v", doc.CreatedAt)
	}
	if string(doc.Content) != string(content) {
		t.Errorf("expected pushed content echoed back, got %s", doc.Content)
	}
}

func TestPush_CreatesFirstDocument(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	content := json.RawMessage(`{"notes":[]}`)

	// Guard misses, lookup finds nothing, insert wins.
	mock.ExpectQuery("UPDATE sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO sync_documents").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(1)))

	doc, err := repo.Push(context.Background(), "fresh-key", content, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != 1 {
		t.Errorf("expected first version 1, got %d", doc.Version)
	}
}

func TestPush_StaleVersionConflict(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	stored := []byte(`{"notes":["server"]}`)

	mock.ExpectQuery("UPDATE sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnRows(sqlmock.
			NewRows([]string{"content", "version", "last_sync", "created_at", "updated_at"}).
			AddRow(stored, int64(5), now, now, now))

	doc, err := repo.Push(context.Background(), "the-key", json.RawMessage(`{}`), 3)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if doc.Version != 5 {
		t.Errorf("expected the stored document returned with the conflict, got version %d", doc.Version)
	}
	if string(doc.Content) != string(stored) {
		t.Errorf("expected stored content returned for rebase, got %s", doc.Content)
	}
}

func TestPush_ClientAheadOfServer(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnRows(sqlmock.
			NewRows([]string{"content", "version", "last_sync", "created_at", "updated_at"}).
			AddRow([]byte(`{}`), int64(2), now, now, now))

	_, err := repo.Push(context.Background(), "the-key", json.RawMessage(`{}`), 7)
	if !errors.Is(err, ErrVersionAhead) {
		t.Fatalf("expected ErrVersionAhead, got %v", err)
	}
}

func TestPush_LostCreateRace(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now().UTC()

	// Guard misses, first lookup finds nothing, insert loses the race
	// (ON CONFLICT DO NOTHING returns no row), re-read shows the winner.
	mock.ExpectQuery("UPDATE sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO sync_documents").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT content, version, last_sync, created_at, updated_at FROM sync_documents").
		WillReturnRows(sqlmock.
			NewRows([]string{"content", "version", "last_sync", "created_at", "updated_at"}).
			AddRow([]byte(`{"winner":true}`), int64(1), now, now, now))

	doc, err := repo.Push(context.Background(), "contested-key", json.RawMessage(`{}`), 0)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict after losing the create race, got %v", err)
	}
	if doc.Version != 1 {
		t.Errorf("expected the winner's document returned, got version %d", doc.Version)
	}
}

func TestPush_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE sync_documents").
		WillReturnError(errors.New("db network error"))

	_, err := repo.Push(context.Background(), "the-key", json.RawMessage(`{}`), 1)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped ErrExecutingQuery, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_documents").
		WithArgs("the-key").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "the-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_documents").
		WithArgs("missing-key").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing-key")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDelete_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_documents").
		WillReturnError(errors.New("db network error"))

	err := repo.Delete(context.Background(), "the-key")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped ErrExecutingQuery, got %v", err)
	}
}
