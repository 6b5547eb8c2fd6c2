package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MiniQuant/internal/model"
)

const (
	maxBodyBytes      = 16 << 20
	maxErrorBodyBytes = 64 << 10
)

// BackendSource implements Source against the Mini-Quant REST backend.
type BackendSource struct {
	BaseURL string
	Client  *http.Client
}

// NewBackendSource creates a source for baseURL with optional proxy support.
// A zero timeout leaves requests bounded only by their context.
func NewBackendSource(baseURL, proxyURL string, timeout time.Duration) *BackendSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BackendSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *BackendSource) Name() string { return "backend" }

// Refresh issues POST /api/stocks/fetch/{SYMBOL}.
func (s *BackendSource) Refresh(ctx context.Context, symbol string) error {
	resp, err := s.do(ctx, PhaseRefresh, http.MethodPost, "/api/stocks/fetch/"+url.PathEscape(symbol))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Read issues GET /api/stocks/{SYMBOL} and parses the body into a dataset.
func (s *BackendSource) Read(ctx context.Context, symbol string) (*model.StockDataset, error) {
	resp, err := s.do(ctx, PhaseRead, http.MethodGet, "/api/stocks/"+url.PathEscape(symbol))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ConnectivityError{Phase: PhaseRead, Err: fmt.Errorf("read body: %w", err)}
	}
	return decodeDataset(body, symbol)
}

// Health issues GET /api/health and expects {"status": "ok"}.
func (s *BackendSource) Health(ctx context.Context) error {
	resp, err := s.do(ctx, PhaseHealth, http.MethodGet, "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&result); err != nil {
		return &MalformedResponseError{Phase: PhaseHealth, Reason: "decode health body", Err: err}
	}
	if result.Status != "ok" {
		return &RemoteRejectionError{
			Phase:      PhaseHealth,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("backend status %q", result.Status),
		}
	}
	return nil
}

// do sends one request. Transport failures become ConnectivityError and
// non-2xx answers become RemoteRejectionError; the caller closes a returned body.
func (s *BackendSource) do(ctx context.Context, phase Phase, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, nil)
	if err != nil {
		return nil, &ConnectivityError{Phase: phase, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Phase: phase, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &RemoteRejectionError{
			Phase:      phase,
			StatusCode: resp.StatusCode,
			Message:    detailMessage(body),
		}
	}
	return resp, nil
}

// detailMessage extracts a FastAPI style {"detail": "..."} message.
func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return MsgFetchFailed
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return MsgFetchFailed
	}
	if detail = strings.TrimSpace(detail); detail == "" {
		return MsgFetchFailed
	}
	return detail
}
