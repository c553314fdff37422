// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the client-side view of the sync server's
// REST API.
//
// The primary abstraction is [SyncClient], which decouples callers (the
// CLI and the background sync worker) from the wire protocol. The
// package ships an HTTP implementation built on resty
// ([NewHTTPSyncClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrRateLimited] for 429).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/OleksandrHridzhak/onda-sync/models"
)

// SyncClient defines communication with the sync server. Implementations
// are responsible for serialization, secret-key header management, and
// mapping transport-level errors to the sentinel values defined in this
// package.
type SyncClient interface {
	// Status fetches existence and version metadata for the configured
	// key without transferring content.
	Status(ctx context.Context) (models.StatusResponse, error)

	// Push uploads the full snapshot at the given clientVersion. On
	// ErrConflict the returned response carries the server's current
	// version and content for rebasing.
	Push(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error)

	// Pull fetches the stored snapshot when the server is ahead of
	// clientVersion; the response reports up-to-date without a payload
	// otherwise.
	Pull(ctx context.Context, clientVersion int64) (models.PullResponse, error)

	// Delete removes the stored snapshot for the configured key.
	Delete(ctx context.Context) (models.DeleteResponse, error)

	// Health probes the server's liveness endpoint. No key is required.
	Health(ctx context.Context) (models.HealthResponse, error)
}
