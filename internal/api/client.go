package api

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"stockhub/internal/domain"
)

// DefaultTimeout bounds a single request when no timeout is configured
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries a fresh id on every request
const RequestIDHeader = "X-Request-ID"

// ErrUnauthorized is wrapped by the StatusError of a 401 response
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the StockHub REST backend
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// ClientOption customises a Client
type ClientOption func(*Client)

// WithToken sends token as a bearer token
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListBranches fetches one page of branches
func (c *Client) ListBranches(ctx context.Context, skip, limit int) ([]domain.Branch, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var branches []domain.Branch
	if err := c.getList(ctx, "/api/branches", "branches", q, &branches); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// ListUsers fetches users, optionally restricted to a role
func (c *Client) ListUsers(ctx context.Context, role string) ([]domain.Employee, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}

	var users []domain.Employee
	if err := c.getList(ctx, "/api/users", "users", q, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateAssignment posts a new assignment and returns it as stored
func (c *Client) CreateAssignment(ctx context.Context, a domain.Assignment) (domain.Assignment, error) {
	var created domain.Assignment
	if err := c.doJSON(ctx, http.MethodPost, "/api/assignments", nil, a, &created); err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	if created.EmployeeID == 0 {
		// some backends only echo the id
		id := created.ID
		created = a
		created.ID = id
	}
	return created, nil
}

// getList decodes a list that is either a bare array or wrapped in an object
func (c *Client) getList(ctx context.Context, path, resource string, q url.Values, out any) error {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return err
	}
	list, err := unwrapList(raw, resource)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(list, out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}

func unwrapList(raw json.RawMessage, resource string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	for _, k := range []string{"items", "data", resource} {
		if v, ok := wrapper[k]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("decode %s: no list in response", resource)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Debug("api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
