package gateway

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

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"stayfront/entity"
	"stayfront/metrics"
	"stayfront/session"
)

// genericErrorMessage is surfaced when the server returns an error response
// without a usable message field.
const genericErrorMessage = "something went wrong"

// APIError is a normalized non-2xx response from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes to sentinel errors, so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return entity.ErrNotFound
	case http.StatusConflict:
		return entity.ErrConflict
	}
	return nil
}

// Client is the shared HTTP transport for all resource clients. It attaches
// the bearer token when one is available; a missing token never blocks a
// request, some endpoints are public.
type Client struct {
	baseURL string
	tokens  session.TokenSource
	http    *http.Client
}

func NewClient(baseURL string, tokens session.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// do issues one request. route is the path template used as the metrics
// label; path is the concrete path. out, when non-nil, receives the decoded
// 2xx response body.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) error {
	start := time.Now()
	labels := prometheus.Labels{"method": method, "path": route}

	err := c.doOnce(ctx, method, path, query, body, out)

	metrics.RequestDuration.With(labels).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsFailed.With(labels).Inc()
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("could not resolve session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return normalizeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// normalizeError turns a non-2xx response into an *APIError, preferring the
// server's message field and falling back to a generic one.
func normalizeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    genericErrorMessage,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var errBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &errBody); err == nil {
		if errBody.Message != "" {
			apiErr.Message = errBody.Message
		} else if errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
	}
	return apiErr
}
