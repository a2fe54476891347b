// Package platform is the HTTP client for the volunteer platform's REST
// API.  The gateway exists to front this API: everything hard (matching,
// persistence, authorization, payment) lives behind these endpoints.  The
// client attaches bearer tokens, applies one fixed request timeout, and
// normalizes every non-2xx response into an *APIError so callers branch on
// classification instead of raw status codes.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one upstream origin.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for baseURL with the given request timeout.  There is
// no per-call cancellation beyond the caller's context; a timed-out call
// simply fails and is treated as a transport error.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// BaseURL reports the configured upstream origin.
func (c *Client) BaseURL() string { return c.base }

// doJSON issues a JSON request and decodes the 2xx body into out (skipped
// when out is nil).  token may be empty for unauthenticated endpoints.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.run(req, out)
}

// run executes a prepared request and decodes the response.  Transport
// failures map to an APIError with status 0 so classification stays uniform.
func (c *Client) run(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: 0, Message: "malformed upstream response: " + err.Error()}
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError, keeping the
// structured errors array when the platform sends one.
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var parsed struct {
		Message string       `json:"message"`
		Error   string       `json:"error"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
		apiErr.Errors = parsed.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
