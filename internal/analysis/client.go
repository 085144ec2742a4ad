// Package analysis talks to the external scoring service that assigns
// priority scores and explanations to a batch of tasks.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/josephgoksu/taskrank/models"
)

const (
	// AnalyzePath is the full-analysis endpoint, relative to the base URL.
	AnalyzePath = "tasks/analyze/"
	// SuggestPath is the suggestion endpoint, relative to the base URL.
	SuggestPath = "tasks/suggest/"

	// DefaultBaseURL is where a locally run scoring service listens.
	DefaultBaseURL = "http://127.0.0.1:8000/api/"

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes = 8 << 20
)

// Config holds the settings for a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://127.0.0.1:8000/api/".
	BaseURL string

	// Timeout bounds each request at the transport level. Zero means no
	// timeout; a timed-out request fails like any other network error.
	Timeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client sends task batches to the scoring service.
type Client struct {
	baseURL   *url.URL
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("scoring service base URL is required")
	}

	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL has no host: %q", cfg.BaseURL)
	}
	// Endpoint paths are resolved relative to the base, which needs a trailing slash.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		client:    httpClient,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// Endpoint returns the URL a remote strategy posts to.
func (c *Client) Endpoint(strategy models.Strategy) (string, error) {
	var path string
	switch strategy {
	case models.StrategySuggest:
		path = SuggestPath
	case models.StrategySmart:
		path = AnalyzePath
	default:
		return "", fmt.Errorf("%w: %s", ErrNotRemoteStrategy, strategy)
	}
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String(), nil
}

// RequestAnalysis posts tasks to the endpoint for strategy and returns the
// service's results in the order it sent them.
func (c *Client) RequestAnalysis(ctx context.Context, tasks []models.Task, strategy models.Strategy) ([]models.AnalyzedTask, error) {
	endpoint, err := c.Endpoint(strategy)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("scoring request failed", "endpoint", endpoint, "error", err)
		return nil, &RemoteError{Kind: KindNetwork, Message: networkMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, &RemoteError{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: networkMessage(err), Err: err}
	}

	c.logger.Debug("scoring response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(respBody)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &RemoteError{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, Message: msg}
	}

	analyzed, err := parseResults(respBody)
	if err != nil {
		return nil, &RemoteError{Kind: KindMalformedResponse, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}
	return analyzed, nil
}

// errorMessage pulls a human-readable message out of an error body.
// JSON bodies contribute their "error" or "detail" field; anything else
// is returned as text.
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return text
	}

	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"error", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}

	compact, err := json.Marshal(parsed)
	if err != nil {
		return text
	}
	return string(compact)
}

// parseResults checks the response shape before trusting it downstream.
func parseResults(body []byte) ([]models.AnalyzedTask, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("expected a JSON array of tasks: %w", err)
	}
	if elems == nil {
		return nil, errors.New("expected a JSON array of tasks, got null")
	}

	results := make([]models.AnalyzedTask, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("result %d is not an object", i)
		}

		var shape struct {
			Title *string `json:"title"`
		}
		if err := json.Unmarshal(elem, &shape); err != nil || shape.Title == nil {
			return nil, fmt.Errorf("result %d has no title", i)
		}

		var a models.AnalyzedTask
		if err := json.Unmarshal(elem, &a); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		results = append(results, a)
	}
	return results, nil
}

func networkMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
