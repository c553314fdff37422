package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
)

const secretKeyHeader = "X-Secret-Key"

// auth enforces the shared-secret scheme on the sync routes.
//
// The secret key arrives in the "X-Secret-Key" header and must be at
// least MinSecretKeyLength characters after trimming whitespace. A
// well-formed key is attached to the request context under
// [utils.SecretKeyCtxKey] for downstream handlers.
//
// Missing and malformed keys receive the identical 401 response. The
// gate never consults storage, so the rejection cannot reveal whether a
// key has a stored document.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		secretKey := strings.TrimSpace(r.Header.Get(secretKeyHeader))
		if len(secretKey) < h.authCfg.MinSecretKeyLength {
			log.Warn().
				Str("func", "*Handler.auth").
				Bool("header_present", r.Header.Get(secretKeyHeader) != "").
				Msg("rejected request with missing or malformed secret key")
			writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.SecretKeyCtxKey, secretKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
