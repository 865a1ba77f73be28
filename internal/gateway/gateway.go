package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"timetable-portal/pkg/response"
)

// Client is the single outbound boundary to the timetable backend. Every
// request carries the configured timeout and every failure is normalized
// into the pkg/response sentinels before it reaches a caller.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError carries the backend-provided reason alongside the taxonomy
// sentinel so errors.Is still matches the category.
type APIError struct {
	Status int
	Reason string
	kind   error
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.kind.Error())
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Reason extracts the server-provided message from a normalized error,
// falling back to the given generic text.
func Reason(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Reason != "" {
		return apiErr.Reason
	}
	return fallback
}

func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) Put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) Delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	const op = "gateway.do"

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classifyTransport(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, response.ErrUnreachable)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %w", op, normalize(resp.StatusCode, raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: %w", op, response.ErrParse)
		}
	}

	return nil
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return response.ErrTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return response.ErrTimeout
	}

	return response.ErrUnreachable
}

func normalize(status int, body []byte) error {
	kind := response.ErrBadRequest
	switch {
	case status == http.StatusUnauthorized:
		kind = response.ErrUnauthorized
	case status == http.StatusForbidden:
		kind = response.ErrForbidden
	case status == http.StatusNotFound:
		kind = response.ErrNotFound
	case status >= 500:
		kind = response.ErrServer
	}

	return &APIError{
		Status: status,
		Reason: extractReason(body),
		kind:   kind,
	}
}

// extractReason pulls the human message out of the backend error body.
// The backend is inconsistent about the field name, so message, detail
// and error are tried in that order.
func extractReason(body []byte) string {
	var fields struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Err     string `json:"error"`
	}

	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	switch {
	case fields.Message != "":
		return fields.Message
	case fields.Detail != "":
		return fields.Detail
	default:
		return fields.Err
	}
}
