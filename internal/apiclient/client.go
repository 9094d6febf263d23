package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/model"
)

const (
	// RequestedBy is sent as X-Requested-By, which the server requires on
	// every non-GET request.
	RequestedBy = "logconsole"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 10 * time.Second
)

// Client talks to the log server's REST API
type Client struct {
	// BaseURL is the server URL without the /api suffix (e.g., "http://graylog:9000")
	BaseURL string

	// Username and Password for HTTP Basic Auth. An API token is sent as
	// the username with the literal password "token".
	Username string
	Password string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

// NewClient creates a new API client for baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetAuth sets HTTP Basic Auth credentials
func (c *Client) SetAuth(username, password string) {
	c.Username = username
	c.Password = password
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// SetInsecure disables TLS certificate verification
func (c *Client) SetInsecure(insecure bool) {
	if !insecure {
		c.HTTPClient.Transport = nil
		return
	}
	c.HTTPClient.Transport = &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in per profile
	}
}

// do performs a request with retries and returns the response body
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, NewNetworkError("request cancelled", ctx.Err())
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		data, err := c.attempt(ctx, method, path, query, body)
		if err == nil {
			return data, nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// attempt performs a single request
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("failed to create %s request", method), err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-By", RequestedBy)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	logging.LogHTTPRequest(requestID, method, path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	logging.LogHTTPResponse(requestID, resp.StatusCode, int64(len(data)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)
		if detail := strings.TrimSpace(string(data)); detail != "" && len(detail) < 512 {
			msg += ": " + detail
		}
		return nil, NewStatusError(resp.StatusCode, msg)
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewParseError(fmt.Sprintf("failed to parse %s response", path), err)
	}
	return nil
}

func (c *Client) putConfig(ctx context.Context, path string, cfg model.Config) (model.Config, error) {
	data, err := c.do(ctx, http.MethodPut, path, nil, cfg)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// 204 No Content: the server accepted our copy
		return cfg.Clone(), nil
	}
	var out model.Config
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewParseError(fmt.Sprintf("failed to parse %s response", path), err)
	}
	return out, nil
}

func clusterConfigPath(configType string) string {
	return "/api/system/cluster_config/" + url.PathEscape(configType)
}

// ClusterConfig fetches one cluster configuration resource
func (c *Client) ClusterConfig(ctx context.Context, configType string) (model.Config, error) {
	var cfg model.Config
	if err := c.getJSON(ctx, clusterConfigPath(configType), nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateClusterConfig replaces one cluster configuration resource
func (c *Client) UpdateClusterConfig(ctx context.Context, configType string, cfg model.Config) (model.Config, error) {
	return c.putConfig(ctx, clusterConfigPath(configType), cfg)
}

// MessageProcessorsConfig fetches the message processor order and disabled set
func (c *Client) MessageProcessorsConfig(ctx context.Context) (model.Config, error) {
	var cfg model.Config
	if err := c.getJSON(ctx, "/api/system/messageprocessors/config", nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateMessageProcessorsConfig replaces the message processor configuration
func (c *Client) UpdateMessageProcessorsConfig(ctx context.Context, cfg model.Config) (model.Config, error) {
	return c.putConfig(ctx, "/api/system/messageprocessors/config", cfg)
}

// URLWhitelist fetches the URL whitelist
func (c *Client) URLWhitelist(ctx context.Context) (model.Config, error) {
	var cfg model.Config
	if err := c.getJSON(ctx, "/api/system/urlwhitelist", nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateURLWhitelist replaces the URL whitelist
func (c *Client) UpdateURLWhitelist(ctx context.Context, cfg model.Config) (model.Config, error) {
	return c.putConfig(ctx, "/api/system/urlwhitelist", cfg)
}

// Inputs lists the configured message inputs
func (c *Client) Inputs(ctx context.Context) ([]model.Input, error) {
	var resp struct {
		Inputs []model.Input `json:"inputs"`
	}
	if err := c.getJSON(ctx, "/api/system/inputs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Inputs, nil
}

// Nodes lists the cluster nodes
func (c *Client) Nodes(ctx context.Context) ([]model.Node, error) {
	var resp struct {
		Nodes []model.Node `json:"nodes"`
	}
	if err := c.getJSON(ctx, "/api/system/cluster/nodes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// Streams lists the streams visible to the user
func (c *Client) Streams(ctx context.Context) ([]model.Stream, error) {
	var resp struct {
		Streams []model.Stream `json:"streams"`
	}
	if err := c.getJSON(ctx, "/api/streams", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Streams, nil
}

// CurrentUser fetches the authenticated user with its permissions
func (c *Client) CurrentUser(ctx context.Context) (model.CurrentUser, error) {
	var user model.CurrentUser
	if err := c.getJSON(ctx, "/api/users/me", nil, &user); err != nil {
		return model.CurrentUser{}, err
	}
	return user, nil
}

// FieldTypes lists every field known to the server with its type
func (c *Client) FieldTypes(ctx context.Context) (model.FieldTypes, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/views/fields", nil, nil)
	if err != nil {
		return model.FieldTypes{}, err
	}
	return DecodeFieldTypes(data)
}

// SearchRequest describes a relative universal search
type SearchRequest struct {
	Query  string
	Range  time.Duration // Look-back window, 0 means all time
	Limit  int
	Offset int
	Fields []string // Optional projection
}

// Search runs a relative universal search, newest first
func (c *Client) Search(ctx context.Context, sr SearchRequest) (model.SearchResult, error) {
	query := sr.Query
	if query == "" {
		query = "*"
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("range", strconv.Itoa(int(sr.Range/time.Second)))
	q.Set("sort", "timestamp:desc")
	if sr.Limit > 0 {
		q.Set("limit", strconv.Itoa(sr.Limit))
	}
	if sr.Offset > 0 {
		q.Set("offset", strconv.Itoa(sr.Offset))
	}
	if len(sr.Fields) > 0 {
		q.Set("fields", strings.Join(sr.Fields, ","))
	}

	data, err := c.do(ctx, http.MethodGet, "/api/search/universal/relative", q, nil)
	if err != nil {
		return model.SearchResult{}, err
	}
	return DecodeSearchResult(data)
}
