// Package models defines the shared data model of the sync service:
// the stored document, request bodies, and response shapes exchanged
// between server and clients.
package models

import (
	"encoding/json"
	"time"
)

// SyncDocument is the unit of synchronization: one document per secret key.
// Content is the client's full table-data snapshot and is opaque to the
// server: it is stored and returned byte-equivalent, never interpreted.
type SyncDocument struct {
	// SecretKey identifies both the document and the authorized caller.
	SecretKey string `json:"-"`

	// Content is the whole payload. It is replaced atomically on every
	// accepted push; the server never merges field-level changes.
	Content json.RawMessage `json:"content"`

	// Version starts at 1 when the document is created and increases by
	// exactly one per accepted push. It is the optimistic-concurrency
	// token clients echo back on push.
	Version int64 `json:"version"`

	// LastSync is the server-side timestamp of the most recent accepted
	// push. It is set by the server and is non-decreasing.
	LastSync time.Time `json:"last_sync"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SyncStatus is the lightweight existence/metadata view of a document,
// returned by the status endpoint so clients can decide whether a full
// pull is warranted without transferring the payload.
type SyncStatus struct {
	Exists   bool      `json:"exists"`
	Version  int64     `json:"version"`
	LastSync time.Time `json:"last_sync"`
}
