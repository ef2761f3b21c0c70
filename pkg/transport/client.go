// Package transport wraps the three sync endpoints and the remote
// receipt printer. Calls carry a fixed timeout and never retry; retry
// policy belongs to the sync loop.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

const requestTimeout = 5 * time.Second

// ConfigSource supplies the current connection settings per request,
// so a reconfigured endpoint takes effect without rebuilding the
// client. *state.Store satisfies it.
type ConfigSource interface {
	Connection() model.ConnectionSettings
}

// Client talks to the desktop backend.
type Client struct {
	source ConfigSource
	http   *http.Client
	log    *zap.SugaredLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger attaches a logger. Without it the client is silent.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithHTTPClient overrides the underlying HTTP client, for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a transport client reading its endpoint from
// source.
func NewClient(source ConfigSource, opts ...Option) *Client {
	c := &Client{
		source: source,
		http:   &http.Client{Timeout: requestTimeout},
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statusResponse struct {
	Status string `json:"status"`
}

// CheckConnection probes the status endpoint. It succeeds only on HTTP
// 200 with a body reporting "ok"; every other outcome returns an error
// that distinguishes an unreachable server from a reachable but
// unhealthy one. No auth headers are sent: the probe stays a cheap,
// preflight-free reachability check.
func (c *Client) CheckConnection(ctx context.Context) error {
	conn := c.source.Connection()
	if conn.APIURL == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, conn.APIURL+"/api/status", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status endpoint returned HTTP %d", ErrServerUnhealthy, resp.StatusCode)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("%w: malformed status body: %v", ErrServerUnhealthy, err)
	}
	if status.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrServerUnhealthy, status.Status)
	}
	return nil
}

// Pull fetches the full server snapshot of the syncable collections.
func (c *Client) Pull(ctx context.Context) (*PullResponse, error) {
	var out PullResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/sync", nil, &out); err != nil {
		return nil, fmt.Errorf("sync pull: %w", err)
	}
	return &out, nil
}

// Push uploads the queue as given. An empty queue returns immediately
// without a request.
func (c *Client) Push(ctx context.Context, queue []model.Operation) (PushResult, error) {
	if len(queue) == 0 {
		return PushResult{}, nil
	}
	var out PushResult
	body := pushRequest{Operations: queue}
	if err := c.doJSON(ctx, http.MethodPost, "/api/sync", &body, &out); err != nil {
		return PushResult{}, fmt.Errorf("sync push: %w", err)
	}
	return out, nil
}

// PrintReceipt sends a transaction to the remote print endpoint.
// Callers treat a failure as non-fatal to the sale.
func (c *Client) PrintReceipt(ctx context.Context, tx model.Transaction) error {
	body := printRequest{Transaction: tx}
	if err := c.doJSON(ctx, http.MethodPost, "/api/print-receipt", &body, nil); err != nil {
		return fmt.Errorf("print receipt: %w", err)
	}
	return nil
}

// doJSON performs one authenticated JSON round trip.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	conn := c.source.Connection()
	if conn.APIURL == "" {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, conn.APIURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if conn.APIKey != "" {
		req.Header.Set("X-API-KEY", conn.APIKey)
		req.Header.Set("Authorization", "Bearer "+conn.APIKey)
	}

	c.log.Debugw("request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
