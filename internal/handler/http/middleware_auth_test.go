package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/utils"
	"github.com/OleksandrHridzhak/onda-sync/models"
)

func newAuthTestHandler() *Handler {
	return &Handler{
		authCfg: config.Auth{MinSecretKeyLength: 8},
		logger:  logger.Nop(),
	}
}

func TestAuth_AttachesKeyToContext(t *testing.T) {
	h := newAuthTestHandler()

	var gotKey string
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey, found = utils.GetSecretKeyFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/sync/data", nil)
	req.Header.Set(secretKeyHeader, "device-shared-key")

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !found || gotKey != "device-shared-key" {
		t.Errorf("expected key in context, got %q found=%v", gotKey, found)
	}
}

func TestAuth_TrimsWhitespace(t *testing.T) {
	h := newAuthTestHandler()

	var gotKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey, _ = utils.GetSecretKeyFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/sync/data", nil)
	req.Header.Set(secretKeyHeader, "  device-shared-key  ")

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)

	if gotKey != "device-shared-key" {
		t.Errorf("expected trimmed key, got %q", gotKey)
	}
}

func TestAuth_RejectionsAreIndistinguishable(t *testing.T) {
	// Missing, empty, and too-short keys must all produce the exact same
	// status and body so a caller cannot probe key validity rules.
	cases := []struct {
		name      string
		setHeader bool
		value     string
	}{
		{name: "missing header", setHeader: false},
		{name: "empty header", setHeader: true, value: ""},
		{name: "whitespace only", setHeader: true, value: "   "},
		{name: "too short", setHeader: true, value: "short"},
	}

	h := newAuthTestHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be reached")
	})

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sync/data", nil)
			if tc.setHeader {
				req.Header.Set(secretKeyHeader, tc.value)
			}

			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != ErrInvalidSecretKey.Error() {
				t.Errorf("unexpected error message: %q", resp.Error)
			}

			bodies = append(bodies, rr.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("rejection bodies differ between cases: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestAuth_MinLengthBoundary(t *testing.T) {
	h := newAuthTestHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	// Exactly at the minimum length passes.
	req := httptest.NewRequest(http.MethodGet, "/sync/data", nil)
	req.Header.Set(secretKeyHeader, "12345678")

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 8-char key to pass with min length 8, got %d", rr.Code)
	}

	// One short of the minimum is rejected.
	req = httptest.NewRequest(http.MethodGet, "/sync/data", nil)
	req.Header.Set(secretKeyHeader, "1234567")

	rr = httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 7-char key to fail with min length 8, got %d", rr.Code)
	}
}
