package httpjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds every request; exceeding it is a transport failure.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response body is read into memory.
	maxBodyBytes = 512 * 1024

	// userAgent mimics curl; some WAFs block default Go/urllib agents.
	userAgent = "curl/7.88.1"
)

// Response is the outcome of a completed HTTP exchange.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode parses the response body as JSON into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Client issues JSON requests with a fixed timeout.
type Client struct {
	http *http.Client
}

// NewClient creates a client with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// Do sends a request with an optional JSON body and returns the response.
// A non-nil error indicates a transport-level failure; HTTP error statuses
// are reported through the Response, never as an error.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("connection failed while reading response: %w", err)
	}

	return &Response{Status: res.StatusCode, Body: data}, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, headers, body)
}

// Truncate returns s cut to at most n bytes, for bounded technical detail
// in user-facing error messages.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
