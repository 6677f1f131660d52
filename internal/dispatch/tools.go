package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/somesh-bagadiya/sb-omnicore/internal/discovery"
	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

// Schema is a JSON-schema-style input constraint for a tool.
type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

// SchemaProperty describes one tool argument.
type SchemaProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// ToolDescriptor describes one callable tool.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// CategoryEnum is the fixed set of project domain tags accepted by the
// list_projects category filter.
var CategoryEnum = discovery.FallbackDomains

// ListTools returns the tool catalog. The get_project_details id enum is
// derived from the live project list, degrading to the static fallback
// when upstream is unreachable.
func (d *Dispatcher) ListTools(ctx context.Context) []ToolDescriptor {
	knownIDs := discovery.ProjectIDs(ctx, d.upstream)

	return []ToolDescriptor{
		{
			Name:        "get_profile",
			Description: "Return Somesh Bagadiya's complete professional profile object",
			InputSchema: Schema{
				Type:       "object",
				Properties: map[string]SchemaProperty{},
				Required:   []string{},
			},
		},
		{
			Name:        "list_projects",
			Description: "Return project array with optional filters by category, technology, or featured status; each project carries its content tier",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]SchemaProperty{
					"category":   {Type: "string", Description: "Filter by project category", Enum: CategoryEnum},
					"technology": {Type: "string", Description: "Filter by technology used"},
					"featured":   {Type: "boolean", Description: "Filter by featured status"},
				},
				Required: []string{},
			},
		},
		{
			Name:        "get_project_details",
			Description: "Return single project details by ID, including parsed content sections",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]SchemaProperty{
					"id": {Type: "string", Description: "Project ID to retrieve", Enum: knownIDs},
				},
				Required: []string{"id"},
			},
		},
		{
			Name:        "list_experiences",
			Description: "Return work experience list with optional filters",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]SchemaProperty{
					"sinceYear": {Type: "number", Description: "Filter experiences starting from this year"},
					"company":   {Type: "string", Description: "Filter by company name"},
					"skill":     {Type: "string", Description: "Filter by skill used"},
				},
				Required: []string{},
			},
		},
		{
			Name:        "list_education",
			Description: "Return education list with optional filters",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]SchemaProperty{
					"degreeType":  {Type: "string", Description: "Filter by degree type (e.g., 'Master', 'Bachelor')"},
					"institution": {Type: "string", Description: "Filter by institution name"},
				},
				Required: []string{},
			},
		},
	}
}

// ToolNames returns the catalog's tool names in stable order.
func (d *Dispatcher) ToolNames() []string {
	return d.toolNames()
}

func (d *Dispatcher) toolGetProfile(ctx context.Context, _ map[string]any) (string, error) {
	profile, err := d.upstream.GetProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching profile: %w", err)
	}
	return marshalIndent(profile)
}

func (d *Dispatcher) toolListProjects(ctx context.Context, args map[string]any) (string, error) {
	projects, err := d.upstream.GetProjects(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching projects: %w", err)
	}

	enriched := d.enrichAll(ctx, projects)

	category, hasCategory := stringArg(args, "category")
	technology, hasTechnology := stringArg(args, "technology")
	featured, hasFeatured := boolArg(args, "featured")

	filtered := enriched[:0:0]
	for _, p := range enriched {
		if hasCategory && !p.InDomain(category) {
			continue
		}
		if hasTechnology && !hasTech(p.Technologies, technology) {
			continue
		}
		if hasFeatured && p.Featured != featured {
			continue
		}
		filtered = append(filtered, p)
	}
	if filtered == nil {
		filtered = []portfolio.EnrichedProject{}
	}

	return marshalIndent(filtered)
}

// hasTech reports whether the technology filter matches any entry of the
// project's technology list. The match is case-sensitive and accepts
// substring hits, so "React" matches "React Native".
func hasTech(techs []string, filter string) bool {
	for _, t := range techs {
		if strings.Contains(t, filter) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) toolGetProjectDetails(ctx context.Context, args map[string]any) (string, error) {
	id, ok := stringArg(args, "id")
	if !ok || id == "" {
		return "", errors.New("project id is required")
	}

	projects, err := d.upstream.GetProjects(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching projects: %w", err)
	}

	// ID is the only stable key. Title matching is deliberately not
	// supported: titles are not guaranteed unique.
	for _, p := range projects {
		if p.ID != id {
			continue
		}
		blob, err := d.upstream.GetProjectContent(ctx, p.ID)
		if err != nil {
			d.logger.Warn("content fetch failed, returning base project", "project", p.ID, "error", err)
			blob = nil
		}
		return marshalIndent(portfolio.Enrich(p, blob))
	}

	return "", &NotFoundError{Kind: "project", Name: id, Available: discovery.IDsOf(projects)}
}

func (d *Dispatcher) toolListExperiences(ctx context.Context, args map[string]any) (string, error) {
	experiences, err := d.upstream.GetExperience(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching experience: %w", err)
	}

	sinceYear, hasSinceYear := numberArg(args, "sinceYear")
	company, hasCompany := stringArg(args, "company")
	skill, hasSkill := stringArg(args, "skill")

	filtered := experiences[:0:0]
	for _, e := range experiences {
		if hasSinceYear && startYear(e.StartDate) < int(sinceYear) {
			continue
		}
		if hasCompany && !strings.EqualFold(e.Company, company) {
			continue
		}
		if hasSkill && !containsString(e.Skills, skill) {
			continue
		}
		filtered = append(filtered, e)
	}
	if filtered == nil {
		filtered = []portfolio.Experience{}
	}

	return marshalIndent(filtered)
}

// startYear parses the leading year of an ISO-ish date string, returning
// 0 when absent so sinceYear filters exclude undated entries.
func startYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func containsString(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func (d *Dispatcher) toolListEducation(ctx context.Context, args map[string]any) (string, error) {
	education, err := d.upstream.GetEducation(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching education: %w", err)
	}

	degreeType, hasDegreeType := stringArg(args, "degreeType")
	institution, hasInstitution := stringArg(args, "institution")

	filtered := education[:0:0]
	for _, ed := range education {
		if hasDegreeType && !containsFold(ed.Degree, degreeType) {
			continue
		}
		if hasInstitution && !containsFold(ed.Institution, institution) {
			continue
		}
		filtered = append(filtered, ed)
	}
	if filtered == nil {
		filtered = []portfolio.Education{}
	}

	return marshalIndent(filtered)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// stringArg extracts a non-empty string argument.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// boolArg extracts a boolean argument.
func boolArg(args map[string]any, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

// numberArg extracts a numeric argument, accepting the float64 that
// encoding/json produces as well as native ints from Go callers.
func numberArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
