// Package service holds the business logic of the sync server: the
// version-gated push/pull/get/delete operations and the storage health
// probe. Handlers talk to these interfaces only; all SQL stays below in
// the store package.
package service

import (
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/store"
)

type Services struct {
	SyncService   SyncService
	HealthService HealthService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		SyncService:   NewSyncService(storages.SyncDocuments, logger),
		HealthService: NewHealthService(storages, logger),
	}
}
