package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/resend/resend-cli/internal/audit"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the Resend REST endpoint
	DefaultBaseURL = "https://api.resend.com"
	// DefaultConnectTimeout bounds connection establishment
	DefaultConnectTimeout = 10 * time.Second
	// DefaultTimeout bounds the whole request, body included
	DefaultTimeout = 30 * time.Second

	userAgent = "resend-cli"

	// maxResponseBody caps how much of a response is read into memory
	maxResponseBody = 10 << 20
)

// ErrMissingAPIKey is returned by New when no API key is provided.
var ErrMissingAPIKey = errors.New("API key is required")

// Client issues authenticated requests against the Resend API. Each method
// performs exactly one HTTP round trip; nothing is retried.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	base           http.RoundTripper
	connectTimeout time.Duration
	timeout        time.Duration
	logger         *audit.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeouts overrides the connect and overall request timeouts.
// Zero values keep the defaults.
func WithTimeouts(connect, overall time.Duration) Option {
	return func(c *Client) {
		if connect > 0 {
			c.connectTimeout = connect
		}
		if overall > 0 {
			c.timeout = overall
		}
	}
}

// WithHTTPClient uses the transport and timeout of hc. The bearer token is
// still injected on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		c.base = hc.Transport
		if c.base == nil {
			c.base = http.DefaultTransport
		}
		if hc.Timeout > 0 {
			c.timeout = hc.Timeout
		}
	}
}

// WithLogger logs every request to logger.
func WithLogger(logger *audit.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client bound to apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL:        DefaultBaseURL,
		connectTimeout: DefaultConnectTimeout,
		timeout:        DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	base := c.base
	if base == nil {
		base = newTransport(c.connectTimeout)
	}

	authed := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
		Base:   base,
	}

	c.httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: audit.NewTransport(authed, c.logger),
	}

	return c, nil
}

func newTransport(connectTimeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = connectTimeout
	return t
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body serialized as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with body serialized as JSON and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE. Any response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return networkError(err)
	}

	if !isSuccess(method, resp.StatusCode) {
		return classify(resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	if v, ok := out.(validatable); ok {
		if err := v.Validate(); err != nil {
			return &DecodeError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// validatable is implemented by response types with required fields
type validatable interface {
	Validate() error
}

func isSuccess(method string, status int) bool {
	if method == http.MethodDelete {
		return status == http.StatusOK || status == http.StatusNoContent
	}
	return status == http.StatusOK || status == http.StatusCreated
}

func networkError(err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindNetwork, Detail: "Request timeout"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindNetwork, Detail: "Request timeout"}
	}
	return &Error{Kind: KindNetwork, Detail: err.Error()}
}
