// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/adapter"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
)

// SyncWorker periodically pushes the local snapshot to the server. On a
// version conflict it adopts the server's state: the worker runs
// headless, so the server copy wins and the local snapshot is rewritten.
type SyncWorker struct {
	client       adapter.SyncClient
	snapshotPath string
	interval     time.Duration
	logger       *logger.Logger

	stop chan struct{}
}

func NewSyncWorker(client adapter.SyncClient, snapshotPath string, interval time.Duration, logger *logger.Logger) *SyncWorker {
	return &SyncWorker{
		client:       client,
		snapshotPath: snapshotPath,
		interval:     interval,
		logger:       logger,
		stop:         make(chan struct{}),
	}
}

// Run starts the periodic sync loop and blocks until Stop is called.
func (w *SyncWorker) Run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().
		Str("func", "SyncWorker.Run").
		Dur("interval", w.interval).
		Msg("background sync started")

	for {
		select {
		case <-ticker.C:
			if err := w.SyncOnce(context.Background()); err != nil {
				w.logger.Err(err).Str("func", "SyncWorker.Run").Msg("sync cycle failed")
			}
		case <-w.stop:
			w.logger.Info().Str("func", "SyncWorker.Run").Msg("background sync stopped")
			return
		}
	}
}

// Stop terminates the loop. Safe to call once.
func (w *SyncWorker) Stop() {
	close(w.stop)
}

// SyncOnce performs a single push cycle: load the local snapshot, push it
// at its recorded version, and reconcile the outcome back to disk.
func (w *SyncWorker) SyncOnce(ctx context.Context) error {
	snap, err := LoadSnapshot(w.snapshotPath)
	if err != nil {
		return err
	}
	if len(snap.Data) == 0 {
		w.logger.Debug().Str("func", "SyncWorker.SyncOnce").Msg("no local snapshot yet, nothing to push")
		return nil
	}

	resp, err := w.client.Push(ctx, snap.Data, snap.Version)
	switch {
	case err == nil:
		snap.Version = resp.Version
		snap.LastSync = resp.LastSync
		return SaveSnapshot(w.snapshotPath, snap)

	case errors.Is(err, adapter.ErrConflict):
		// Another device pushed first. Adopt the server state.
		w.logger.Info().
			Str("func", "SyncWorker.SyncOnce").
			Int64("local_version", snap.Version).
			Int64("server_version", resp.Version).
			Msg("conflict: adopting server state")
		snap.Data = resp.Data
		snap.Version = resp.Version
		snap.LastSync = resp.LastSync
		return SaveSnapshot(w.snapshotPath, snap)

	case errors.Is(err, adapter.ErrRateLimited):
		// Back off until the next tick.
		w.logger.Warn().Str("func", "SyncWorker.SyncOnce").Msg("rate limited, skipping cycle")
		return nil

	default:
		return err
	}
}
