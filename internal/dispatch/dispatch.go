// Package dispatch implements the transport-agnostic operation set of the
// portfolio MCP server: list/read resources, list/get prompts, and
// list/call tools. The stdio, REST, and JSON-RPC transports are thin
// adapters over one Dispatcher, so filtering and enrichment are defined
// exactly once.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

const (
	ServerName        = "portfolio-mcp-server"
	ServerVersion     = "1.0.0"
	ServerDescription = "Model Context Protocol server for Somesh Bagadiya's professional portfolio"
)

// Upstream is the portfolio API surface the dispatcher depends on.
type Upstream interface {
	GetProfile(ctx context.Context) (portfolio.Profile, error)
	GetProjects(ctx context.Context) ([]portfolio.Project, error)
	GetExperience(ctx context.Context) ([]portfolio.Experience, error)
	GetEducation(ctx context.Context) ([]portfolio.Education, error)
	GetProjectContent(ctx context.Context, projectID string) (*portfolio.ContentBlob, error)
	BaseURL() string
}

// NotFoundError reports an unknown resource, prompt, tool, or project,
// enumerating the valid names so the calling model can self-correct.
type NotFoundError struct {
	Kind      string
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q. Available %ss: %s",
		e.Kind, e.Name, e.Kind, strings.Join(e.Available, ", "))
}

// TextContent is one text block in a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the outcome of a tool call. Failures are carried in-band
// via IsError; they are never transport-level faults.
type ToolResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Dispatcher translates logical MCP operations into upstream calls.
// It holds no mutable state; one instance serves all requests.
type Dispatcher struct {
	upstream    Upstream
	logger      *slog.Logger
	now         func() time.Time
	enrichLimit int

	tools map[string]toolHandler
}

type toolHandler func(ctx context.Context, args map[string]any) (string, error)

// Option adjusts a Dispatcher at construction.
type Option func(*Dispatcher)

// WithLogger substitutes the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithClock substitutes the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithEnrichLimit bounds the per-project content fetch fan-out.
func WithEnrichLimit(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.enrichLimit = n
		}
	}
}

// New creates a Dispatcher over the given upstream.
func New(u Upstream, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		upstream:    u,
		logger:      slog.Default(),
		now:         time.Now,
		enrichLimit: 4,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.tools = map[string]toolHandler{
		"get_profile":         d.toolGetProfile,
		"list_projects":       d.toolListProjects,
		"get_project_details": d.toolGetProjectDetails,
		"list_experiences":    d.toolListExperiences,
		"list_education":      d.toolListEducation,
	}
	return d
}

// CallTool dispatches a tool invocation by name. It never returns a
// transport-level failure: unknown names, bad arguments, upstream
// outages, and panics all come back as an IsError result.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) (result ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool handler panic", "tool", name, "panic", r)
			result = errorResult("tool %s failed: internal error", name)
		}
	}()

	handler, ok := d.tools[name]
	if !ok {
		return errorResult("%v", &NotFoundError{Kind: "tool", Name: name, Available: d.toolNames()})
	}

	text, err := handler(ctx, args)
	if err != nil {
		d.logger.Warn("tool call failed", "tool", name, "error", err)
		return errorResult("%v", err)
	}
	return textResult(text)
}

func (d *Dispatcher) toolNames() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// enrichAll attaches detailed content to every project, fetching blobs
// concurrently. A failed fetch degrades that one project to tier3 rather
// than failing the batch.
func (d *Dispatcher) enrichAll(ctx context.Context, projects []portfolio.Project) []portfolio.EnrichedProject {
	enriched := make([]portfolio.EnrichedProject, len(projects))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.enrichLimit)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			blob, err := d.upstream.GetProjectContent(gCtx, p.ID)
			if err != nil {
				d.logger.Warn("content fetch failed, degrading project", "project", p.ID, "error", err)
				blob = nil
			}
			enriched[i] = portfolio.Enrich(p, blob)
			return nil
		})
	}
	g.Wait()

	return enriched
}

func textResult(text string) ToolResult {
	return ToolResult{
		Content: []TextContent{{Type: "text", Text: text}},
	}
}

func errorResult(format string, args ...any) ToolResult {
	return ToolResult{
		Content: []TextContent{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func marshalIndent(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling result: %w", err)
	}
	return string(b), nil
}
