// Package api is the gateway to the recruitment REST backend. Every
// endpoint gets its own raw wire type mirroring the JSON the server
// actually sends; responses are normalized into internal/models before
// they leave this package, so the rest of the application never sees the
// wire shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenSource supplies the current bearer token. An empty string means the
// request goes out unauthenticated.
type TokenSource func() string

// Error is a failed gateway call. Message is always user-displayable: it
// comes from the server's error body when one exists, otherwise from the
// per-operation fallback.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Client talks to the recruitment backend over HTTP.
type Client struct {
	baseURL string
	token   TokenSource
	client  *http.Client
}

// NewClient constructs a gateway with a shared HTTP client.
func NewClient(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// errorBody mirrors the error payloads the backend produces. Some
// endpoints use "message", others "detail".
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// doJSON issues a request with an optional JSON body and decodes the
// response into out (out may be nil for DELETE-style calls). fallback is
// the generic user-facing message used when the server gives none.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, fallback)
}

// send attaches auth, executes the request and maps failures onto *Error.
func (c *Client) send(req *http.Request, out any, fallback string) error {
	req.Header.Set("Accept", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Message: fallback, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Detail != "" {
				msg = eb.Detail
			}
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: fallback, cause: err}
		}
	}
	return nil
}

// decodeText accepts the two shapes the description endpoints are known to
// return: a bare JSON string, or an object with a "description" field.
func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Description
	}
	return string(raw)
}
