package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/OleksandrHridzhak/onda-sync/models"
)

const secretKeyHeader = "X-Secret-Key"

// HTTPClientConfig configures the HTTP sync client.
type HTTPClientConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

type httpSyncClient struct {
	client    *resty.Client
	secretKey string
}

// NewHTTPSyncClient constructs a SyncClient talking to the given server.
func NewHTTPSyncClient(cfg HTTPClientConfig) SyncClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3001"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpSyncClient{client: cli, secretKey: cfg.SecretKey}
}

func (h *httpSyncClient) Status(ctx context.Context) (models.StatusResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(secretKeyHeader, h.secretKey).
		Get("/sync/data")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	var out models.StatusResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.StatusResponse{}, fmt.Errorf("status decode: %w", err)
	}
	return out, nil
}

func (h *httpSyncClient) Push(ctx context.Context, content json.RawMessage, clientVersion int64) (models.PushResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(secretKeyHeader, h.secretKey).
		SetBody(models.PushRequest{Data: content, ClientVersion: clientVersion}).
		Post("/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push request: %w", err)
	}

	// A conflict body still decodes: it carries the server's version and
	// content so the caller can rebase.
	if resp.StatusCode() == http.StatusConflict {
		var out models.PushResponse
		if decodeErr := json.Unmarshal(resp.Body(), &out); decodeErr != nil {
			return models.PushResponse{}, fmt.Errorf("push conflict decode: %w", decodeErr)
		}
		return out, fmt.Errorf("%w: server at version %d", ErrConflict, out.Version)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	var out models.PushResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PushResponse{}, fmt.Errorf("push decode: %w", err)
	}
	return out, nil
}

func (h *httpSyncClient) Pull(ctx context.Context, clientVersion int64) (models.PullResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(secretKeyHeader, h.secretKey).
		SetBody(models.PullRequest{ClientVersion: clientVersion}).
		Post("/sync/pull")
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	var out models.PullResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PullResponse{}, fmt.Errorf("pull decode: %w", err)
	}
	return out, nil
}

func (h *httpSyncClient) Delete(ctx context.Context) (models.DeleteResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(secretKeyHeader, h.secretKey).
		Delete("/sync/data")
	if err != nil {
		return models.DeleteResponse{}, fmt.Errorf("delete request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeleteResponse{}, err
	}

	var out models.DeleteResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.DeleteResponse{}, fmt.Errorf("delete decode: %w", err)
	}
	return out, nil
}

func (h *httpSyncClient) Health(ctx context.Context) (models.HealthResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	var out models.HealthResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.HealthResponse{}, fmt.Errorf("health decode: %w", err)
	}
	return out, nil
}
