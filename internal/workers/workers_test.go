// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"testing"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestNewWorkers_ZeroIntervalMeansNoWorker(t *testing.T) {
	ws := NewWorkers(nil, config.Workers{}, "snapshot.json", logger.Nop())

	if len(ws.workers) != 0 {
		t.Errorf("expected no workers with zero interval, got %d", len(ws.workers))
	}
}

func TestNewWorkers_IntervalCreatesSyncWorker(t *testing.T) {
	ws := NewWorkers(nil, config.Workers{SyncInterval: time.Minute}, "snapshot.json", logger.Nop())

	if len(ws.workers) != 1 {
		t.Fatalf("expected one worker, got %d", len(ws.workers))
	}
	if _, ok := ws.workers[0].(*SyncWorker); !ok {
		t.Errorf("expected a *SyncWorker, got %T", ws.workers[0])
	}
}
