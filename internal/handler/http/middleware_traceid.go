package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request trace ID. Clients may supply their own
// so that both sides log the same ID; otherwise the server generates one.
const traceIDHeader = "X-Trace-ID"

// withTraceID tags every request with a trace ID: it is echoed back in the
// response header and attached to a request-scoped child logger, so the
// access log and every handler log line of the request share one ID.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := requestTraceID(r)

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

// requestTraceID returns the client-supplied trace ID, or a fresh UUID when
// the header is absent.
func requestTraceID(r *http.Request) string {
	if id := r.Header.Get(traceIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}
