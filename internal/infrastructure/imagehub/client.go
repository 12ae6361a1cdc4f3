// Package imagehub is the typed HTTP client for the ImageHub REST API. Every
// data operation of the web front-end goes through it.
package imagehub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/pkg/metrics"
)

// maxErrorBody bounds how much of an error answer is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the ImageHub API rooted at baseURL.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client. A nil http.Client gets one without a timeout:
// the API is given as long as the browser connection lasts.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		panic("imagehub: baseURL must not be empty")
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string { return c.baseURL }

type call struct {
	action string
	method string
	path   string
	query  url.Values
	header http.Header
	body   io.Reader
	// authenticated selects the 401/403 → ErrUnauthorized mapping.
	authenticated bool
}

// errorBody is the error envelope of the API: {success, message, error}.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func jsonCall(action, method, path string, payload any) (call, error) {
	cl := call{action: action, method: method, path: path, header: http.Header{}}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return call{}, fmt.Errorf("marshal %s payload: %w", action, err)
		}
		cl.body = bytes.NewReader(b)
	}
	cl.header.Set("Content-Type", "application/json")
	return cl, nil
}

func (cl call) as(s domain.Session) call {
	cl.header = s.AuthHeaders()
	cl.authenticated = true
	return cl
}

// send performs the call and returns the response only for 2xx answers. The
// caller owns the body.
func (c *Client) send(ctx context.Context, cl call) (*http.Response, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cl.action, err)
	}
	for k, v := range cl.header {
		req.Header[k] = v
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(cl.action).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.action, "unreachable").Inc()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreachable, cl.action, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.action, "ok").Inc()
		return resp, nil
	}

	defer resp.Body.Close()
	msg := readErrorMessage(resp.Body)

	switch {
	case cl.authenticated && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.action, "unauthorized").Inc()
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrUnauthorized, cl.action, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.action, "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, cl.action)
	default:
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.action, "error").Inc()
		return nil, &domain.APIError{Status: resp.StatusCode, Message: msg}
	}
}

// sendJSON performs the call and decodes a 2xx body into out (when non-nil).
func (c *Client) sendJSON(ctx context.Context, cl call, out any) error {
	resp, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", cl.action, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func itoa(n int) string { return strconv.Itoa(n) }

// Ping reports whether the API answers at all. Any HTTP status counts as
// reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, call{action: "ping", method: http.MethodGet, path: "/"})
	if errors.Is(err, domain.ErrUnreachable) {
		return err
	}
	if resp != nil {
		resp.Body.Close()
	}
	return nil
}
