// Package apiclient is an HTTP client for the words REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second

	// UserAgent identifies the web client to the API.
	UserAgent = "wordledger-web/1.0"
	// HeaderRequestID carries a per-call correlation id.
	HeaderRequestID = "X-Request-ID"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// NewHTTPClient creates an HTTP client for API calls.
// A zero timeout means requests are never cut short by the client.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: TLSHandshakeTimeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		// The API never redirects; a redirect means a misconfigured base URL.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Client calls the words API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("API base URL must be http or https, got %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("API base URL has no host: %q", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: NewHTTPClient(0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// newRequest builds a request for the API path. An empty token sends no
// Authorization header.
func (c *Client) newRequest(ctx context.Context, method, token string, body any, path ...string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL.JoinPath(path...)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do sends the request and reads the whole body. Transport failures are
// reported as KindNetwork errors.
func (c *Client) do(req *http.Request, op string) (int, []byte, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			slog.String("op", op),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("request_id", req.Header.Get(HeaderRequestID)),
			slog.String("error", err.Error()),
		)
		return 0, nil, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, &Error{Op: op, Kind: KindNetwork, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("api request",
		slog.String("op", op),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status_code", resp.StatusCode),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		slog.String("request_id", req.Header.Get(HeaderRequestID)),
	)

	return resp.StatusCode, body, nil
}

// decode unmarshals body into v, reporting failures as KindDecode errors.
func decode(op string, status int, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Op: op, Kind: KindDecode, StatusCode: status, Err: err}
	}
	return nil
}

// serverMessage extracts a best-effort message from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Msg
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// Ping checks that the API answers its liveness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "", nil, "healthz")
	if err != nil {
		return err
	}

	status, body, err := c.do(req, OpPing)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &Error{Op: OpPing, Kind: KindHTTP, StatusCode: status, Message: serverMessage(body)}
	}
	return nil
}
