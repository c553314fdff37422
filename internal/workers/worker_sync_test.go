package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/adapter"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

type mockSyncClient struct {
	pushFn func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error)
}

func (m *mockSyncClient) Status(ctx context.Context) (models.StatusResponse, error) {
	return models.StatusResponse{}, nil
}

func (m *mockSyncClient) Push(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
	if m.pushFn != nil {
		return m.pushFn(ctx, content, clientVersion)
	}
	return models.PushResponse{}, nil
}

func (m *mockSyncClient) Pull(ctx context.Context, clientVersion int64) (models.PullResponse, error) {
	return models.PullResponse{}, nil
}

func (m *mockSyncClient) Delete(ctx context.Context) (models.DeleteResponse, error) {
	return models.DeleteResponse{}, nil
}

func (m *mockSyncClient) Health(ctx context.Context) (models.HealthResponse, error) {
	return models.HealthResponse{}, nil
}

func snapshotFile(t *testing.T, snap LocalSnapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	return path
}

func TestSyncOnce_PushesAndAdvancesVersion(t *testing.T) {
	now := time.Now().UTC()
	path := snapshotFile(t, LocalSnapshot{Data: json.RawMessage(`{"rev":"local"}`), Version: 2})

	var gotVersion int64
	cli := &mockSyncClient{
		pushFn: func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
			gotVersion = clientVersion
			return models.PushResponse{Success: true, Version: 3, LastSync: &now}, nil
		},
	}

	w := NewSyncWorker(cli, path, time.Minute, logger.Nop())
	if err := w.SyncOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotVersion != 2 {
		t.Errorf("expected push at local version 2, got %d", gotVersion)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("failed to reload snapshot: %v", err)
	}
	if snap.Version != 3 {
		t.Errorf("expected local version advanced to 3, got %d", snap.Version)
	}
	if string(snap.Data) != `{"rev":"local"}` {
		t.Errorf("expected local data kept, got %s", snap.Data)
	}
}

func TestSyncOnce_ConflictAdoptsServerState(t *testing.T) {
	now := time.Now().UTC()
	path := snapshotFile(t, LocalSnapshot{Data: json.RawMessage(`{"rev":"local"}`), Version: 2})

	cli := &mockSyncClient{
		pushFn: func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
			return models.PushResponse{
				HasConflict: true,
				Version:     5,
				Data:        json.RawMessage(`{"rev":"server"}`),
				LastSync:    &now,
			}, fmt.Errorf("%w: server at version 5", adapter.ErrConflict)
		},
	}

	w := NewSyncWorker(cli, path, time.Minute, logger.Nop())
	if err := w.SyncOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("failed to reload snapshot: %v", err)
	}
	if snap.Version != 5 {
		t.Errorf("expected adopted server version 5, got %d", snap.Version)
	}
	if string(snap.Data) != `{"rev":"server"}` {
		t.Errorf("expected adopted server data, got %s", snap.Data)
	}
}

func TestSyncOnce_EmptySnapshotIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	called := false
	cli := &mockSyncClient{
		pushFn: func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
			called = true
			return models.PushResponse{}, nil
		},
	}

	w := NewSyncWorker(cli, path, time.Minute, logger.Nop())
	if err := w.SyncOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("expected no push without a local snapshot")
	}
}

func TestSyncOnce_RateLimitedSkipsCycle(t *testing.T) {
	path := snapshotFile(t, LocalSnapshot{Data: json.RawMessage(`{}`), Version: 1})

	cli := &mockSyncClient{
		pushFn: func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
			return models.PushResponse{}, fmt.Errorf("%w: retry after 30s", adapter.ErrRateLimited)
		},
	}

	w := NewSyncWorker(cli, path, time.Minute, logger.Nop())
	if err := w.SyncOnce(context.Background()); err != nil {
		t.Errorf("rate limiting must not surface as a cycle error, got %v", err)
	}

	// Local state is untouched.
	snap, _ := LoadSnapshot(path)
	if snap.Version != 1 {
		t.Errorf("expected local version unchanged, got %d", snap.Version)
	}
}

func TestSyncOnce_TransportErrorPropagates(t *testing.T) {
	path := snapshotFile(t, LocalSnapshot{Data: json.RawMessage(`{}`), Version: 1})

	boom := errors.New("connection refused")
	cli := &mockSyncClient{
		pushFn: func(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
			return models.PushResponse{}, boom
		},
	}

	w := NewSyncWorker(cli, path, time.Minute, logger.Nop())
	if err := w.SyncOnce(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected transport error to propagate, got %v", err)
	}
}

func TestRun_StopTerminatesLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	w := NewSyncWorker(&mockSyncClient{}, path, 10*time.Millisecond, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
