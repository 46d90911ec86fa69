// Package client calls the feedback service's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
)

// DefaultTimeout bounds each request.
const DefaultTimeout = 30 * time.Second

// IdempotencyHeader carries the client-generated submission key.
const IdempotencyHeader = "Idempotency-Key"

// APIError is a non-2xx response that is not a validation failure.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s (code %s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to one server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

type submitResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Action string            `json:"action"`
	Fields map[string]string `json:"fields"`
}

// Submit posts one submission and returns the id assigned by the server.
// A 400 response is returned as a *core.ValidationError so callers can show
// the same per-field messages as local validation.
func (c *Client) Submit(ctx context.Context, sub core.NewSubmission) (int64, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/submit"), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sub.IdempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, sub.IdempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return out.ID, nil
}

// Download fetches a report ("excel" or "pdf") and copies it to w. It
// returns the filename suggested by the server.
func (c *Client) Download(ctx context.Context, format string, w io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/report/"+url.PathEscape(format)), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", format, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("read %s report: %w", format, err)
	}

	name := "submissions." + format
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, nil
}

// Health reports whether the server and its store are reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/healthz"), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil || er.Error == "" {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode == http.StatusBadRequest && len(er.Fields) > 0 {
		return validationFromWire(er.Fields)
	}
	return &APIError{Status: resp.StatusCode, Message: er.Error, Code: er.Code}
}

// validationFromWire maps wire-named field messages back to fields, in
// form order. Unknown names are kept as-is.
func validationFromWire(fields map[string]string) *core.ValidationError {
	verr := &core.ValidationError{}
	for _, spec := range core.FieldSpecs {
		if msg, ok := fields[spec.Wire]; ok {
			verr.Errors = append(verr.Errors, core.FieldError{Field: spec.Field, Message: msg})
		}
	}
	var extra []string
	for name := range fields {
		if _, known := core.SpecByWire(name); !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		verr.Errors = append(verr.Errors, core.FieldError{Field: core.Field(name), Message: fields[name]})
	}
	return verr
}

// IsUnavailable reports whether err means the server could not be reached
// or failed on its side, as opposed to rejecting the input.
func IsUnavailable(err error) bool {
	if err == nil || core.IsValidationError(err) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}
