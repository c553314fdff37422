// Package handler aggregates the transport-level handlers of the sync
// server. Only HTTP is exposed today; the aggregate keeps the wiring in
// main uniform if another transport is ever added.
package handler

import (
	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/handler/http"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}
}
