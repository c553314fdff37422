package http

import (
	"errors"
	"net/http"

	"github.com/OleksandrHridzhak/onda-sync/internal/service"
	"github.com/OleksandrHridzhak/onda-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrNoDataProvided:  http.StatusBadRequest,
	service.ErrInvalidVersion:  http.StatusBadRequest,
	service.ErrVersionConflict: http.StatusConflict,

	store.ErrDocumentNotFound: http.StatusNotFound,
	store.ErrVersionConflict:  http.StatusConflict,
	store.ErrVersionAhead:     http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
