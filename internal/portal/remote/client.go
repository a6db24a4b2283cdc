// Package remote is the HTTP client the portal core uses to reach the system
// of record. Every response is the JSON envelope the server writes.
package remote

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
)

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	token   func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithToken sets the bearer token source sent on every request.
func WithToken(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Fields map[string]string `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, nil, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	return c.Do(ctx, http.MethodDelete, path, query, nil, nil)
}

// Do sends one request and decodes the envelope's data into out when out is
// non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Status: resp.StatusCode, Code: "read_failed", Message: err.Error(), Err: err}
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &RemoteError{Status: resp.StatusCode, Code: "bad_response", Message: "response is not a JSON envelope", Err: err}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return classify(resp.StatusCode, env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RemoteError{Status: resp.StatusCode, Code: "bad_response", Message: "unexpected response data", Err: err}
	}
	return nil
}

// Download fetches a binary body such as a PDF export.
func (c *Client) Download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Code: "read_failed", Message: err.Error(), Err: err}
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, classify(resp.StatusCode, env)
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Code: "unreachable", Message: err.Error(), Err: err}
	}
	return resp, nil
}

func classify(status int, env envelope) error {
	code, message := "", http.StatusText(status)
	if env.Error != nil {
		code, message = env.Error.Code, env.Error.Message
		if code == "validation_error" && len(env.Error.Details.Fields) > 0 {
			return NewValidationError(env.Error.Details.Fields)
		}
	}
	remoteErr := &RemoteError{Status: status, Code: code, Message: message}
	if status == http.StatusNotFound {
		remoteErr.Err = ErrNotFound
	}
	return remoteErr
}
