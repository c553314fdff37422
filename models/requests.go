package models

import (
	"encoding/json"
	"time"
)

// PushRequest is the body of POST /sync/push. Data carries the client's
// full snapshot; ClientVersion is the version the client believes the
// server holds (0 or absent on first push).
type PushRequest struct {
	Data          json.RawMessage `json:"data"`
	ClientVersion int64           `json:"clientVersion,omitempty"`
}

// PullRequest is the body of POST /sync/pull. ClientVersion drives the
// up-to-date check; ClientLastSync is kept for backward compatibility with
// old clients that tracked a timestamp instead of a version.
type PullRequest struct {
	ClientVersion  int64      `json:"clientVersion,omitempty"`
	ClientLastSync *time.Time `json:"clientLastSync,omitempty"`
}
