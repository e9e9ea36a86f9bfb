package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/husarprojects/healthsync/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) SyncServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.husarprojects.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Login(ctx context.Context, username, password, pushToken string) (models.Session, error) {
	body := models.LoginRequest{Username: username, Password: password, PushToken: pushToken}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/v2/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}

	session, err := parseAuthResponse(resp)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	h.SetToken(session.AccessToken)
	return session, nil
}

func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{Refresh: refreshToken}).
		Post("/api/v2/refresh")
	if err != nil {
		return models.Session{}, fmt.Errorf("refresh request: %w", err)
	}

	session, err := parseAuthResponse(resp)
	if err != nil {
		return models.Session{}, fmt.Errorf("refresh: %w", err)
	}

	h.SetToken(session.AccessToken)
	return session, nil
}

func (h *httpServerAdapter) UploadBatch(ctx context.Context, recordType models.RecordType, records []models.Record) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.SyncRequest{Data: records}).
		Post("/api/v2/sync/" + recordType.String())
	if err != nil {
		return fmt.Errorf("upload batch %s: %w", recordType, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) UploadOne(ctx context.Context, recordType models.RecordType, record models.Record) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.SyncRequest{Data: record}).
		Post("/api/v2/sync/" + recordType.String())
	if err != nil {
		return fmt.Errorf("upload record %s: %w", recordType, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteByIDs(ctx context.Context, recordType models.RecordType, ids []string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteRequest{UUID: ids}).
		Delete("/api/v2/sync/" + recordType.String())
	if err != nil {
		return fmt.Errorf("delete records %s: %w", recordType, err)
	}

	return mapHTTPError(resp)
}

// authedRequest builds a request carrying the bearer token. The orchestrator
// must not invoke upload/delete without a session, so an absent token is a
// caller error rather than a transport failure.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token), nil
}

// parseAuthResponse decodes a login/refresh response. Success is signalled
// by presence of the token field, failure by an error field or non-2xx
// status.
func parseAuthResponse(resp *resty.Response) (models.Session, error) {
	var auth models.AuthResponse
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		if httpErr := mapHTTPError(resp); httpErr != nil {
			return models.Session{}, httpErr
		}
		return models.Session{}, fmt.Errorf("decode auth response: %w", err)
	}

	if auth.Token == "" {
		if auth.Error != "" {
			return models.Session{}, fmt.Errorf("%w: %s", ErrAuthRejected, auth.Error)
		}
		if httpErr := mapHTTPError(resp); httpErr != nil {
			return models.Session{}, httpErr
		}
		return models.Session{}, ErrAuthRejected
	}

	return models.Session{AccessToken: auth.Token, RefreshToken: auth.Refresh}, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
