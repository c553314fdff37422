package service

import (
	"context"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

const healthCheckTimeout = 2 * time.Second

// StoragePinger is the slice of the storage layer the health check needs.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// healthService is the concrete implementation of HealthService.
type healthService struct {
	storage StoragePinger
	logger  *logger.Logger
}

// NewHealthService constructs a HealthService probing the given storage.
func NewHealthService(storage StoragePinger, logger *logger.Logger) HealthService {
	return &healthService{
		storage: storage,
		logger:  logger,
	}
}

// Check implements HealthService. It never fails: a broken storage
// backend yields a degraded report, not an error, so liveness probes keep
// working while the database is down.
func (s *healthService) Check(ctx context.Context) models.HealthResponse {
	report := models.HealthResponse{
		Status:    "ok",
		Storage:   "connected",
		Timestamp: time.Now().UTC(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.storage.Ping(pingCtx); err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "healthService.Check").
			Msg("storage ping failed")
		report.Status = "degraded"
		report.Storage = "disconnected"
	}

	return report
}
