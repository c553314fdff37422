package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/models"
)

// SyncService implements the push/pull/get/delete semantics for whole-document
// synchronization. Every operation is scoped to the secret key it receives;
// keys never interact.
type SyncService interface {
	// GetStatus reports existence and version metadata for the key's
	// document without transferring content. Returns
	// store.ErrDocumentNotFound when nothing is stored for the key.
	GetStatus(ctx context.Context, secretKey string) (models.SyncStatus, error)

	// Push stores content for the key using optimistic concurrency. On
	// success the returned document carries the new version. On
	// ErrVersionConflict the returned document is the current server state
	// so the caller can rebase.
	Push(ctx context.Context, secretKey string, content json.RawMessage, clientVersion int64) (models.SyncDocument, error)

	// Pull returns the stored document when the client is behind, or an
	// up-to-date result without content when it is current. Returns
	// store.ErrDocumentNotFound when nothing is stored for the key.
	Pull(ctx context.Context, secretKey string, clientVersion int64, clientLastSync *time.Time) (PullResult, error)

	// Delete removes the key's document. Returns store.ErrDocumentNotFound
	// when nothing is stored; deletion is idempotent in effect.
	Delete(ctx context.Context, secretKey string) error
}

// HealthService reports liveness of the service and its storage backend.
type HealthService interface {
	Check(ctx context.Context) models.HealthResponse
}

// PullResult is the outcome of a Pull operation.
type PullResult struct {
	// Document is the stored document. Content is populated only when the
	// client needs it (UpToDate is false).
	Document models.SyncDocument

	// UpToDate reports that the client already holds the current version;
	// no content is transferred.
	UpToDate bool

	// Conflict reports that the client claims a version ahead of the
	// server. The full server document is returned so the client can
	// resynchronize.
	Conflict bool
}
