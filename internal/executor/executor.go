package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/version"
)

// ContentTypeJSON is sent with every request body
const ContentTypeJSON = "application/json; charset=UTF-8"

// Outcome is a completed exchange with the remote API.
// Response is nil when the body could not be parsed.
type Outcome struct {
	Response *types.APIResponse
	Result   *types.RequestResult
}

// Dispatcher issues requests against the messaging API
type Dispatcher struct {
	cfg    config.Config
	client *http.Client
	logger *slog.Logger
	locks  *Locks
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithHTTPClient replaces the default client (its timeout is left as is)
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		d.client = client
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLocks shares a control lock table with the caller
func WithLocks(locks *Locks) Option {
	return func(d *Dispatcher) {
		d.locks = locks
	}
}

// New creates a dispatcher bound to a copy of cfg
func New(cfg config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.API.Timeout},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.locks == nil {
		d.locks = NewLocks(nil)
	}
	return d
}

// Config returns the settings the dispatcher was built with
func (d *Dispatcher) Config() config.Config {
	return d.cfg
}

// Locks returns the control lock table
func (d *Dispatcher) Locks() *Locks {
	return d.locks
}

// URL returns the absolute URL of an endpoint
func (d *Dispatcher) URL(ep types.Endpoint) string {
	return strings.TrimRight(d.cfg.API.BaseURL, "/") + "/" + ep.Name
}

// Do performs a single request and parses the response envelope.
// Transport failures and unparsable bodies return *NetworkError.
// A parsed envelope with success=false returns the outcome together with *APIError.
func (d *Dispatcher) Do(ctx context.Context, ep types.Endpoint, payload any) (*Outcome, error) {
	startTime := time.Now()
	requestID := uuid.NewString()
	logger := d.logger.With("endpoint", ep.Name, "request_id", requestID)

	var bodyReader io.Reader
	requestSize := 0
	if ep.Method != http.MethodGet && payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", ep.Name, err)
		}
		bodyReader = bytes.NewReader(body)
		requestSize = len(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, ep.Method, d.URL(ep), bodyReader)
	if err != nil {
		return nil, &NetworkError{Endpoint: ep, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", ContentTypeJSON)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	httpReq.Header.Set("X-Request-Id", requestID)

	logger.Debug("sending request", "method", ep.Method, "url", httpReq.URL.String(), "bytes", requestSize)

	resp, err := d.client.Do(httpReq)
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		logger.Warn("request failed", "error", err, "duration_ms", duration)
		return nil, &NetworkError{Endpoint: ep, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response body", "error", err, "status", resp.StatusCode)
		return nil, &NetworkError{Endpoint: ep, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	headers := make(map[string]string)
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}

	result := &types.RequestResult{
		RequestID:    requestID,
		Status:       resp.StatusCode,
		StatusText:   resp.Status,
		Headers:      headers,
		Body:         string(bodyBytes),
		Duration:     duration,
		RequestSize:  requestSize,
		ResponseSize: len(bodyBytes),
	}

	var apiResp types.APIResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		logger.Warn("response is not JSON", "status", resp.StatusCode, "error", err)
		return &Outcome{Result: result}, &NetworkError{
			Endpoint: ep,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%w: %v", ErrInvalidJSON, err),
		}
	}

	outcome := &Outcome{Response: &apiResp, Result: result}
	if !apiResp.Success {
		logger.Info("request rejected", "status", resp.StatusCode, "error", apiResp.Error, "duration_ms", duration)
		return outcome, &APIError{Endpoint: ep, Status: resp.StatusCode, Message: apiResp.Error}
	}

	logger.Info("request completed", "status", resp.StatusCode, "duration_ms", duration, "bytes", len(bodyBytes))
	return outcome, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}
