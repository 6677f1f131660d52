// Package upstream wraps the portfolio website's HTTP API. The client is
// immutable after construction and safe for concurrent use; every call
// carries its own timeout and no call is retried.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

// Per-endpoint timeouts. The projects endpoint is slower than the flat
// records, and content-augmented projects slower still.
const (
	defaultRecordTimeout   = 5 * time.Second
	defaultProjectsTimeout = 10 * time.Second
	defaultContentTimeout  = 15 * time.Second
)

// apiPrefix is the API mount point under the portfolio site root. The
// configured base URL is the site root; every request goes through here.
const apiPrefix = "/api/mcp"

// userAgent identifies this server to the portfolio API.
const userAgent = "Portfolio-MCP-Server/1.0.0"

// Error reports a failed upstream call: a non-2xx status or a timeout.
type Error struct {
	Endpoint   string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("upstream %s: timed out", e.Endpoint)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrMalformedPayload marks a projects response carrying no recognized
// array field. Callers treat it as recoverable, not a crash.
var ErrMalformedPayload = errors.New("projects payload is not an array in any recognized field")

// Client fetches portfolio data over HTTP. Construct once, share freely.
type Client struct {
	baseURL    string
	httpClient *http.Client

	recordTimeout   time.Duration
	projectsTimeout time.Duration
	contentTimeout  time.Duration
}

// Option adjusts a Client at construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeouts overrides the per-endpoint timeouts. Zero values keep the
// defaults.
func WithTimeouts(record, projects, content time.Duration) Option {
	return func(c *Client) {
		if record > 0 {
			c.recordTimeout = record
		}
		if projects > 0 {
			c.projectsTimeout = projects
		}
		if content > 0 {
			c.contentTimeout = content
		}
	}
}

// New creates a Client targeting the given portfolio site root. The API
// path prefix is appended here, so callers configure only the site URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/") + apiPrefix,
		httpClient:      &http.Client{},
		recordTimeout:   defaultRecordTimeout,
		projectsTimeout: defaultProjectsTimeout,
		contentTimeout:  defaultContentTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved API base URL, prefix included.
func (c *Client) BaseURL() string { return c.baseURL }

// get fetches path with the given timeout and decodes the JSON body into
// out. Timeouts and non-2xx statuses surface as *Error.
func (c *Client) get(ctx context.Context, endpoint, path string, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Endpoint: endpoint, Timeout: true, Err: err}
		}
		return &Error{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// GetProfile fetches the professional profile record.
func (c *Client) GetProfile(ctx context.Context) (portfolio.Profile, error) {
	var p portfolio.Profile
	if err := c.get(ctx, "profile", "/profile", c.recordTimeout, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProjects fetches the full project list.
func (c *Client) GetProjects(ctx context.Context) ([]portfolio.Project, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "projects", "/projects", c.projectsTimeout, &raw); err != nil {
		return nil, err
	}
	return decodeProjects(raw)
}

// GetExperience fetches the work experience list.
func (c *Client) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "experience", "/experience", c.recordTimeout, &raw); err != nil {
		return nil, err
	}
	var out []portfolio.Experience
	if err := decodeRecords(raw, "experiences", &out); err != nil {
		return nil, fmt.Errorf("decoding experience: %w", err)
	}
	return out, nil
}

// GetEducation fetches the education list.
func (c *Client) GetEducation(ctx context.Context) ([]portfolio.Education, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "education", "/education", c.recordTimeout, &raw); err != nil {
		return nil, err
	}
	var out []portfolio.Education
	if err := decodeRecords(raw, "education", &out); err != nil {
		return nil, fmt.Errorf("decoding education: %w", err)
	}
	return out, nil
}

// GetProjectContent re-queries the projects endpoint with the content
// flag and extracts the matching project's detail blob. A missing project
// or a project without content returns (nil, nil): content absence is a
// normal state, not a fault.
func (c *Client) GetProjectContent(ctx context.Context, projectID string) (*portfolio.ContentBlob, error) {
	path := "/projects?projectId=" + url.QueryEscape(projectID) + "&includeContent=true"

	var raw json.RawMessage
	if err := c.get(ctx, "projects", path, c.contentTimeout, &raw); err != nil {
		return nil, err
	}
	projects, err := decodeProjects(raw)
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.ID != projectID {
			continue
		}
		if p.Content == "" {
			return nil, nil
		}
		return &portfolio.ContentBlob{
			Content:      p.Content,
			WordCount:    portfolio.CountWords(p.Content),
			LastModified: p.LastModified,
		}, nil
	}
	return nil, nil
}

// projectArrayKeys are the wrapper fields the upstream API has been seen
// to use, checked in order.
var projectArrayKeys = []string{"allProjects", "projects", "featured"}

// decodeProjects accepts either a bare project array or an object wrapping
// one under a recognized key. Anything else is ErrMalformedPayload.
func decodeProjects(raw json.RawMessage) ([]portfolio.Project, error) {
	var direct []portfolio.Project
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, previewJSON(raw))
	}
	for _, key := range projectArrayKeys {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		var projects []portfolio.Project
		if err := json.Unmarshal(inner, &projects); err != nil {
			return nil, fmt.Errorf("%w: field %q is not a project array", ErrMalformedPayload, key)
		}
		return projects, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, previewJSON(raw))
}

// decodeRecords accepts either a bare array or an object wrapping one
// under the given key, mirroring the projects tolerance for the flat
// record endpoints.
func decodeRecords(raw json.RawMessage, key string, out any) error {
	if err := json.Unmarshal(raw, out); err == nil {
		return nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return fmt.Errorf("unrecognized payload shape: %s", previewJSON(raw))
	}
	inner, ok := wrapper[key]
	if !ok {
		return fmt.Errorf("payload has no %q field", key)
	}
	return json.Unmarshal(inner, out)
}

func previewJSON(raw json.RawMessage) string {
	const max = 80
	s := string(raw)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
