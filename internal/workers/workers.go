package workers

import (
	"github.com/OleksandrHridzhak/onda-sync/internal/adapter"
	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the client's background workers. With a zero sync
// interval no periodic worker is created and Run returns immediately.
func NewWorkers(client adapter.SyncClient, cfg config.Workers, snapshotPath string, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.SyncInterval > 0 {
		ws.workers = append(ws.workers, NewSyncWorker(client, snapshotPath, cfg.SyncInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
