// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/service"
	"github.com/OleksandrHridzhak/onda-sync/internal/store"
	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

// getData reports existence and version metadata for the caller's
// document. Content is never included; clients use this to decide
// whether a pull is worth the transfer.
func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, found := utils.GetSecretKeyFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getData").Msg("no secret key in context")
		writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
		return
	}

	status, err := h.services.SyncService.GetStatus(ctx, secretKey)
	if errors.Is(err, store.ErrDocumentNotFound) {
		_, _ = utils.WriteJSON(w, models.StatusResponse{
			Exists:  false,
			Message: "No data found for this key",
		}, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.getData").Msg("error getting sync status")
		writeError(w, "error getting sync status", statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.StatusResponse{
		Exists:   status.Exists,
		Version:  status.Version,
		LastSync: &status.LastSync,
	}, http.StatusOK)
}

// pushData applies the version-gated whole-document replace.
func (h *Handler) pushData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, found := utils.GetSecretKeyFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pushData").Msg("no secret key in context")
		writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
		return
	}

	var pushRequest models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pushData").Msg("invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.services.SyncService.Push(ctx, secretKey, pushRequest.Data, pushRequest.ClientVersion)
	switch {
	case err == nil:
		_, _ = utils.WriteJSON(w, models.PushResponse{
			Success:  true,
			Version:  doc.Version,
			LastSync: &doc.LastSync,
			Message:  "Data synced successfully",
		}, http.StatusOK)

	case errors.Is(err, service.ErrVersionConflict):
		// The current server document rides along so the losing device
		// can rebase and retry.
		_, _ = utils.WriteJSON(w, models.PushResponse{
			Success:     false,
			HasConflict: true,
			Version:     doc.Version,
			LastSync:    &doc.LastSync,
			Data:        doc.Content,
			Message:     "Version conflict - pull the latest data and retry",
		}, http.StatusConflict)

	case errors.Is(err, service.ErrNoDataProvided), errors.Is(err, service.ErrInvalidVersion):
		writeError(w, err.Error(), statusFromError(err))

	default:
		log.Error().Err(err).Str("func", "*Handler.pushData").Msg("error pushing data")
		writeError(w, "error pushing data", statusFromError(err))
	}
}

// pullData returns the stored document when the caller is behind, or a
// lightweight up-to-date result when it is current. An empty request
// body is treated as a versionless client that wants everything.
func (h *Handler) pullData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, found := utils.GetSecretKeyFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pullData").Msg("no secret key in context")
		writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
		return
	}

	var pullRequest models.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&pullRequest); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.pullData").Msg("invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	res, err := h.services.SyncService.Pull(ctx, secretKey, pullRequest.ClientVersion, pullRequest.ClientLastSync)
	if errors.Is(err, store.ErrDocumentNotFound) {
		_, _ = utils.WriteJSON(w, models.PullResponse{
			Exists:  false,
			Message: "No data found for this key",
		}, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.pullData").Msg("error pulling data")
		writeError(w, "error pulling data", statusFromError(err))
		return
	}

	response := models.PullResponse{
		Exists:   true,
		Version:  res.Document.Version,
		LastSync: &res.Document.LastSync,
	}
	switch {
	case res.UpToDate:
		response.Message = "Already up to date"
	case res.Conflict:
		response.HasConflict = true
		response.Data = res.Document.Content
		response.Message = "Client version ahead of server - resynchronize"
	default:
		response.Data = res.Document.Content
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

// deleteData removes the caller's document entirely.
func (h *Handler) deleteData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, found := utils.GetSecretKeyFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteData").Msg("no secret key in context")
		writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
		return
	}

	err := h.services.SyncService.Delete(ctx, secretKey)
	if errors.Is(err, store.ErrDocumentNotFound) {
		_, _ = utils.WriteJSON(w, models.DeleteResponse{
			Success: false,
			Message: "No data found for this key",
		}, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.deleteData").Msg("error deleting data")
		writeError(w, "error deleting data", statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.DeleteResponse{
		Success: true,
		Message: "Data deleted successfully",
	}, http.StatusOK)
}
