// Package httpapi implements the service.Service interface against the
// event/task web application's JSON endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"evtask/internal/config"
	"evtask/internal/logging"
	"evtask/internal/service"
)

const (
	// Absolute endpoints, resolved against the base URL.
	TogglePath = "/events/togglecomplete"
	DeletePath = "/events/deletetask"
	EditPath   = "/events/edittask"

	// Relative endpoints, resolved against the page URL.
	PublishPath  = "publish"
	RegisterPath = "home/register"

	// APITimeout is the default timeout for API calls.
	APITimeout = 5 * time.Second

	// RequestIDHeader carries a per-request id for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// Client implements service.Service over HTTP GET requests.
type Client struct {
	http     *http.Client
	base     *url.URL
	page     *url.URL
	timeout  time.Duration
	logger   *slog.Logger
	validate *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client from config.
// When token.json exists, requests carry it as a bearer token.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{}
	if cfg.HasToken() {
		token, err := loadToken(cfg.TokenPath())
		if err != nil {
			return nil, err
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}
	return NewWithHTTPClient(httpClient, cfg.BaseURL, cfg.PageBase(), WithTimeout(cfg.Timeout), WithLogger(logger))
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// pageURL may be empty, in which case relative endpoints resolve against baseURL.
func NewWithHTTPClient(httpClient *http.Client, baseURL, pageURL string, opts ...Option) (*Client, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	page := base
	if pageURL != "" {
		page, err = parseBase(pageURL)
		if err != nil {
			return nil, fmt.Errorf("invalid page url: %w", err)
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		http:     httpClient,
		base:     base,
		page:     page,
		timeout:  APITimeout,
		logger:   logging.Discard(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}

// ToggleComplete implements service.Service.
func (c *Client) ToggleComplete(ctx context.Context, taskID string) (service.ToggleResult, error) {
	var resp toggleResponse
	params := url.Values{"task_id": {taskID}}
	if err := c.get(ctx, c.base, TogglePath, params, &resp); err != nil {
		return service.ToggleResult{}, err
	}
	return service.ToggleResult{
		TaskID:   string(*resp.TID),
		Complete: *resp.Complete,
	}, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (service.DeleteResult, error) {
	var resp deleteResponse
	params := url.Values{"task_id": {taskID}}
	if err := c.get(ctx, c.base, DeletePath, params, &resp); err != nil {
		return service.DeleteResult{}, err
	}
	return service.DeleteResult{
		TaskID:  string(*resp.TID),
		Deleted: *resp.DeleteSuccess,
	}, nil
}

// EditTask implements service.Service.
func (c *Client) EditTask(ctx context.Context, task service.TaskRef) (service.EditResult, error) {
	var resp editResponse
	params := url.Values{
		"id":          {task.ID},
		"title":       {task.Title},
		"description": {task.Description},
	}
	if err := c.get(ctx, c.base, EditPath, params, &resp); err != nil {
		return service.EditResult{}, err
	}
	if resp.Task == nil {
		return service.EditResult{}, nil
	}
	return service.EditResult{Task: &service.TaskRef{
		ID:          string(*resp.Task.ID),
		Title:       *resp.Task.Title,
		Description: *resp.Task.Description,
	}}, nil
}

// TogglePublish implements service.Service.
func (c *Client) TogglePublish(ctx context.Context, eventID string) (service.PublishResult, error) {
	var resp publishResponse
	params := url.Values{"event_id": {eventID}}
	if err := c.get(ctx, c.page, PublishPath, params, &resp); err != nil {
		return service.PublishResult{}, err
	}
	return service.PublishResult{
		EventID:   eventID,
		Published: *resp.Publish,
	}, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, eventID, userID string) (service.RegisterResult, error) {
	var resp registerResponse
	params := url.Values{"event_id": {eventID}, "user_id": {userID}}
	if err := c.get(ctx, c.page, RegisterPath, params, &resp); err != nil {
		return service.RegisterResult{}, err
	}
	result := service.RegisterResult{EventID: eventID, UserID: userID}
	if resp.RegisterSuccess != nil {
		if *resp.RegisterSuccess {
			result.Outcome = service.Registered
		} else {
			result.Outcome = service.AlreadyRegistered
		}
	}
	return result, nil
}

// get issues a GET for endpoint (resolved against ref), decodes the JSON body
// into dst and validates it.
func (c *Client) get(ctx context.Context, ref *url.URL, endpoint string, params url.Values, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := ref.ResolveReference(&url.URL{Path: endpoint, RawQuery: params.Encode()})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrBackend, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	c.logger.Debug("request", "method", req.Method, "url", u.String(), "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "request_id", requestID, logging.Err(err))
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response", "request_id", requestID, "status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d (run: evtask login)", service.ErrUnauthorized, endpoint, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s returned %d", service.ErrBackend, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return wrapError(err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", service.ErrMalformedResponse, endpoint, err)
	}
	if err := c.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", service.ErrMalformedResponse, endpoint, err)
	}
	return nil
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrBackend)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", service.ErrBackend, context.Canceled)
	}
	return fmt.Errorf("%w: %w", service.ErrBackend, err)
}

// loadToken reads a stored bearer token.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidToken, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidToken, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", service.ErrInvalidToken)
	}
	return &token, nil
}
