package workers

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LocalSnapshot is the client-side sync state kept on disk: the full
// table-data payload plus the server version it corresponds to.
type LocalSnapshot struct {
	Data     json.RawMessage `json:"data"`
	Version  int64           `json:"version"`
	LastSync *time.Time      `json:"lastSync,omitempty"`
}

// LoadSnapshot reads the snapshot file. A missing file yields an empty
// snapshot at version 0, which the server treats as a first push.
func LoadSnapshot(path string) (LocalSnapshot, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return LocalSnapshot{}, nil
	}
	if err != nil {
		return LocalSnapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snap LocalSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return LocalSnapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot writes the snapshot file. The payload is the user's data,
// so the file is created readable by the owner only.
func SaveSnapshot(path string, snap LocalSnapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}
