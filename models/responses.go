// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"time"
)

// StatusResponse is returned by GET /sync/data. It carries existence and
// change-detection metadata only, never the payload itself.
type StatusResponse struct {
	Exists   bool       `json:"exists"`
	Version  int64      `json:"version,omitempty"`
	LastSync *time.Time `json:"lastSync,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// PushResponse is returned by POST /sync/push.
//
// On success, Version and LastSync describe the newly accepted state.
// On a version conflict, HasConflict is true and Version/Data carry the
// current server state so the client can rebase and retry.
type PushResponse struct {
	Success     bool            `json:"success"`
	Version     int64           `json:"version,omitempty"`
	LastSync    *time.Time      `json:"lastSync,omitempty"`
	HasConflict bool            `json:"hasConflict,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// PullResponse is returned by POST /sync/pull. Data is omitted when the
// client is already current, to avoid retransferring unchanged payloads.
type PullResponse struct {
	Exists      bool            `json:"exists"`
	Data        json.RawMessage `json:"data,omitempty"`
	Version     int64           `json:"version,omitempty"`
	LastSync    *time.Time      `json:"lastSync,omitempty"`
	HasConflict bool            `json:"hasConflict"`
	Message     string          `json:"message,omitempty"`
}

// DeleteResponse is returned by DELETE /sync/data.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health. Status is "ok" when the
// storage backend answers a ping within the probe deadline, "degraded"
// otherwise; the endpoint itself stays reachable either way.
type HealthResponse struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the generic failure body used across all endpoints.
// RetryAfter is set (in seconds) only on rate-limit rejections.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retryAfter,omitempty"`
}
