package store

import (
	"context"
	"encoding/json"

	"github.com/OleksandrHridzhak/onda-sync/models"
)

// SyncDocumentRepository is the durable key-value store over
// [models.SyncDocument], keyed by secret key.
type SyncDocumentRepository interface {
	// Get returns the document stored for secretKey, or
	// [ErrDocumentNotFound].
	Get(ctx context.Context, secretKey string) (models.SyncDocument, error)

	// Exists reports whether a document is stored for secretKey.
	Exists(ctx context.Context, secretKey string) (bool, error)

	// Push performs the conditional write backing the push operation.
	//
	// When no document exists for secretKey, a new one is created at
	// version 1 and returned. When clientVersion equals the stored
	// version, the content is replaced atomically, the version is
	// incremented by one, and the new document is returned.
	//
	// When clientVersion is behind the stored version, the current
	// document is returned together with [ErrVersionConflict]; no
	// mutation occurs. When clientVersion is ahead of the stored
	// version, the current document is returned with [ErrVersionAhead].
	//
	// The compare-and-replace is a single guarded statement: two
	// concurrent pushes with the same clientVersion cannot both succeed.
	Push(ctx context.Context, secretKey string, content json.RawMessage, clientVersion int64) (models.SyncDocument, error)

	// Delete removes the document entirely. Deleting an absent key
	// returns [ErrDocumentNotFound].
	Delete(ctx context.Context, secretKey string) error
}
