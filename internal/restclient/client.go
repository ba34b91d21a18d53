// Package restclient is the HTTP adapter shared by the tracker and GitHub
// clients: it builds requests, applies credentials and maps responses onto
// the domain error taxonomy.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trackersync/internal/domain"
)

const DefaultTimeout = 15 * time.Second

// DefaultMaxBody caps how much of a response is read into memory.
const DefaultMaxBody = 10 << 20

type Client struct {
	service string
	baseURL string
	http    *http.Client
	auth    Authenticator
	headers map[string]string
	maxBody int64
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithAuth(a Authenticator) Option {
	return func(c *Client) { c.auth = a }
}

func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithMaxBody sets the largest response body accepted; bigger answers fail
// as transport errors rather than being truncated.
func WithMaxBody(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New returns a client for one remote service. service names the remote in
// error messages.
func New(service, baseURL string, opts ...Option) *Client {
	c := &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    NoAuth{},
		headers: map[string]string{"Accept": "application/json"},
		maxBody: DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Endpoint   string
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do sends a request and reads the whole body. Only failures to reach the
// service are returned as errors; status handling is left to the caller.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, c.transportError(method+" "+path, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(method+" "+path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, c.transportError(method+" "+path, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, &domain.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Endpoint:   method + " " + path,
			Message:    fmt.Sprintf("response body exceeds %d bytes", c.maxBody),
			Err:        domain.ErrTransport,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Endpoint:   method + " " + path,
	}, nil
}

// Get fetches path and decodes a successful JSON answer into target.
func (c *Client) Get(ctx context.Context, path string, query url.Values, target any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.Decode(resp, target)
}

// Decode maps a non-2xx response to *domain.APIError and unmarshals the body otherwise.
func (c *Client) Decode(resp *Response, target any) error {
	if !resp.OK() {
		return c.StatusError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, target); err != nil {
		return &domain.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Endpoint,
			Message:    "malformed response",
			Err:        fmt.Errorf("%w: %w", domain.ErrTransport, err),
		}
	}
	return nil
}

func (c *Client) StatusError(resp *Response) *domain.APIError {
	return &domain.APIError{
		Service:    c.service,
		StatusCode: resp.StatusCode,
		Endpoint:   resp.Endpoint,
		Message:    summarize(resp.Body),
	}
}

func (c *Client) transportError(endpoint string, err error) error {
	return &domain.APIError{
		Service:  c.service,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      fmt.Errorf("%w: %w", domain.ErrTransport, err),
	}
}

func summarize(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	if s == "" {
		return "empty response"
	}
	return s
}
