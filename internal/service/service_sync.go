// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/store"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

// syncService is the concrete implementation of SyncService. All
// concurrency control lives in the store's conditional write; this layer
// validates input, classifies outcomes, and keeps content opaque.
type syncService struct {
	repo   store.SyncDocumentRepository
	logger *logger.Logger
}

// NewSyncService constructs a SyncService on top of the given repository.
func NewSyncService(repo store.SyncDocumentRepository, logger *logger.Logger) SyncService {
	return &syncService{
		repo:   repo,
		logger: logger,
	}
}

// GetStatus implements SyncService. Content is deliberately omitted: the
// status probe exists so clients can decide whether a pull is worth the
// transfer.
func (s *syncService) GetStatus(ctx context.Context, secretKey string) (models.SyncStatus, error) {
	doc, err := s.repo.Get(ctx, secretKey)
	if err != nil {
		return models.SyncStatus{}, err
	}

	return models.SyncStatus{
		Exists:   true,
		Version:  doc.Version,
		LastSync: doc.LastSync,
	}, nil
}

// Push implements SyncService.
func (s *syncService) Push(ctx context.Context, secretKey string, content json.RawMessage, clientVersion int64) (models.SyncDocument, error) {
	log := logger.FromContext(ctx)

	if isEmptyContent(content) {
		return models.SyncDocument{}, ErrNoDataProvided
	}
	if clientVersion < 0 {
		return models.SyncDocument{}, ErrInvalidVersion
	}

	doc, err := s.repo.Push(ctx, secretKey, content, clientVersion)
	switch {
	case err == nil:
		log.Debug().
			Str("func", "syncService.Push").
			Int64("version", doc.Version).
			Msg("push accepted")
		return doc, nil

	case errors.Is(err, store.ErrVersionConflict):
		// Routine multi-device outcome. The current server document rides
		// along so the client can rebase and retry.
		return doc, fmt.Errorf("%w: %w", ErrVersionConflict, err)

	case errors.Is(err, store.ErrVersionAhead):
		return doc, fmt.Errorf("%w: %w", ErrInvalidVersion, err)

	default:
		return models.SyncDocument{}, err
	}
}

// Pull implements SyncService.
//
// Version comparison is authoritative; clientLastSync is honored only for
// legacy clients that report no version at all.
func (s *syncService) Pull(ctx context.Context, secretKey string, clientVersion int64, clientLastSync *time.Time) (PullResult, error) {
	log := logger.FromContext(ctx)

	doc, err := s.repo.Get(ctx, secretKey)
	if err != nil {
		return PullResult{}, err
	}

	switch {
	case clientVersion > doc.Version:
		// The client claims a version the server never issued. Hand back
		// the full server document so it can resynchronize.
		log.Warn().
			Str("func", "syncService.Pull").
			Int64("server_version", doc.Version).
			Int64("client_version", clientVersion).
			Msg("client version ahead of server")
		return PullResult{Document: doc, Conflict: true}, nil

	case clientVersion == doc.Version:
		return upToDate(doc), nil

	case clientVersion == 0 && clientLastSync != nil && !clientLastSync.Before(doc.LastSync):
		// Versionless legacy client whose last sync is current.
		return upToDate(doc), nil

	default:
		return PullResult{Document: doc}, nil
	}
}

// Delete implements SyncService.
func (s *syncService) Delete(ctx context.Context, secretKey string) error {
	return s.repo.Delete(ctx, secretKey)
}

// upToDate builds a content-free result carrying only version metadata.
func upToDate(doc models.SyncDocument) PullResult {
	doc.Content = nil
	return PullResult{Document: doc, UpToDate: true}
}

// isEmptyContent reports whether the raw payload carries nothing to
// store. JSON null counts as empty: the original clients send it when
// the snapshot is missing.
func isEmptyContent(content json.RawMessage) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
