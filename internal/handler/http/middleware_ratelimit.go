package http

import (
	"math"
	"net/http"
	"sync/atomic"

	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

// pruneEvery bounds how often expired limiter entries are swept. The
// sweep piggybacks on request handling, so an idle server simply keeps
// its stale counters until traffic returns.
const pruneEvery = 4096

var limiterRequestCount atomic.Uint64

// rateLimit enforces the per-key request quota. It runs after auth, so
// the identity it counts against is the verified secret key.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		secretKey, found := utils.GetSecretKeyFromContext(r.Context())
		if !found {
			log.Error().Str("func", "*Handler.rateLimit").Msg("no secret key in context")
			writeError(w, ErrInvalidSecretKey.Error(), http.StatusUnauthorized)
			return
		}

		if limiterRequestCount.Add(1)%pruneEvery == 0 {
			h.limiter.Prune()
		}

		allowed, retryAfter := h.limiter.Allow(secretKey)
		if !allowed {
			retryAfterSeconds := int64(math.Ceil(retryAfter.Seconds()))
			log.Warn().
				Str("func", "*Handler.rateLimit").
				Int64("retry_after_seconds", retryAfterSeconds).
				Msg("rate limit exceeded")
			_, _ = utils.WriteJSON(w, models.ErrorResponse{
				Error:      ErrRateLimitExceeded.Error(),
				RetryAfter: retryAfterSeconds,
			}, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
