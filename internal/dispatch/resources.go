package dispatch

import (
	"context"
	"time"

	"github.com/somesh-bagadiya/sb-omnicore/internal/discovery"
	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

// Resource URIs exposed over every transport.
const (
	ResourceProfile         = "portfolio://profile"
	ResourceProjects        = "portfolio://projects"
	ResourceExperience      = "portfolio://experience"
	ResourceEducation       = "portfolio://education"
	ResourceToolGuide       = "portfolio://tool-guide"
	ResourceContentCoverage = "portfolio://content-coverage"
)

// ResourceDescriptor describes one named, URI-addressed resource.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

// ResourceContents is the payload of one resource read.
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ListResources returns the static resource catalog.
func (d *Dispatcher) ListResources() []ResourceDescriptor {
	return []ResourceDescriptor{
		{
			URI:         ResourceProfile,
			Name:        "Developer Profile",
			Description: "Comprehensive professional profile for Somesh Bagadiya",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceProjects,
			Name:        "Project Portfolio",
			Description: "Complete project portfolio with resume-optimized descriptions",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceExperience,
			Name:        "Work Experience",
			Description: "Professional work history with resume-ready formatting",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceEducation,
			Name:        "Education Background",
			Description: "Academic background with coursework and achievements",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceToolGuide,
			Name:        "Tool Usage Guide",
			Description: "How to combine the portfolio tools effectively",
			MIMEType:    "application/json",
		},
		{
			URI:         ResourceContentCoverage,
			Name:        "Content Coverage Report",
			Description: "Per-project detailed-content availability and tier classification",
			MIMEType:    "application/json",
		},
	}
}

// ResourceURIs returns the catalog's URIs.
func (d *Dispatcher) ResourceURIs() []string {
	descriptors := d.ListResources()
	uris := make([]string, len(descriptors))
	for i, r := range descriptors {
		uris[i] = r.URI
	}
	return uris
}

// ReadResource reads one resource by URI. Upstream failures degrade to an
// annotated fallback payload; only an unknown URI is an error.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) (ResourceContents, error) {
	var payload map[string]any

	switch uri {
	case ResourceProfile:
		payload = d.readProfile(ctx)
	case ResourceProjects:
		payload = d.readProjects(ctx)
	case ResourceExperience:
		payload = d.readExperience(ctx)
	case ResourceEducation:
		payload = d.readEducation(ctx)
	case ResourceToolGuide:
		payload = d.readToolGuide(ctx)
	case ResourceContentCoverage:
		payload = d.readContentCoverage(ctx)
	default:
		return ResourceContents{}, &NotFoundError{Kind: "resource", Name: uri, Available: d.ResourceURIs()}
	}

	text, err := marshalIndent(payload)
	if err != nil {
		return ResourceContents{}, err
	}
	return ResourceContents{URI: uri, MIMEType: "application/json", Text: text}, nil
}

// freshness is the context block stamped onto every live resource read.
func (d *Dispatcher) freshness(usage string) map[string]any {
	return map[string]any{
		"lastUpdated": d.now().UTC().Format(time.RFC3339),
		"source":      "Live portfolio data",
		"usage":       usage,
	}
}

func (d *Dispatcher) readProfile(ctx context.Context) map[string]any {
	profile, err := d.upstream.GetProfile(ctx)
	if err != nil {
		d.logger.Warn("profile read degraded to fallback", "error", err)
		return map[string]any{
			"error": "Failed to fetch live profile data",
			"fallback": map[string]any{
				"name":     "Somesh Bagadiya",
				"headline": "AI/ML Engineer & Developer",
				"location": "San Jose, CA",
				"status":   "Available for AI/ML engineering roles",
				"message":  "Please check portfolio connection",
			},
		}
	}

	payload := map[string]any{}
	for k, v := range profile {
		payload[k] = v
	}
	payload["context"] = d.freshness("Use this data to understand Somesh's background, skills, and current availability for resume tailoring and interview preparation")
	return payload
}

func (d *Dispatcher) readProjects(ctx context.Context) map[string]any {
	projects, err := d.upstream.GetProjects(ctx)
	if err != nil {
		d.logger.Warn("projects read degraded to fallback", "error", err)
		return map[string]any{
			"error":    "Failed to fetch live projects data",
			"fallback": true,
			"message":  "Portfolio connection unavailable - please try again",
		}
	}

	featured := 0
	for _, p := range projects {
		if p.Featured {
			featured++
		}
	}

	payload := map[string]any{
		"projects": projects,
		"resumeGuidance": map[string]any{
			"featuredProjects":   "Use these featured projects for most resumes - they represent the strongest work",
			"domainSelection":    "Filter by domain based on job requirements (GenAI for AI roles, Web & Cloud for full-stack)",
			"descriptionFormats": "Choose technical/business/academic framing based on role type and company culture",
			"impactMetrics":      "Always include quantified results when available",
		},
	}
	fresh := d.freshness("Use this project portfolio to understand Somesh's technical capabilities and select relevant projects for resume tailoring")
	fresh["totalProjects"] = len(projects)
	fresh["featuredCount"] = featured
	payload["context"] = fresh
	return payload
}

func (d *Dispatcher) readExperience(ctx context.Context) map[string]any {
	experiences, err := d.upstream.GetExperience(ctx)
	if err != nil {
		d.logger.Warn("experience read degraded to fallback", "error", err)
		return map[string]any{
			"error":    "Failed to fetch live experience data",
			"fallback": true,
			"message":  "Portfolio connection unavailable - please try again",
		}
	}

	return map[string]any{
		"experiences": experiences,
		"context":     d.freshness("Use this work experience data to understand Somesh's career progression and achievements for resume tailoring"),
	}
}

func (d *Dispatcher) readEducation(ctx context.Context) map[string]any {
	education, err := d.upstream.GetEducation(ctx)
	if err != nil {
		d.logger.Warn("education read degraded to fallback", "error", err)
		return map[string]any{
			"error":    "Failed to fetch live education data",
			"fallback": true,
			"message":  "Portfolio connection unavailable - please try again",
		}
	}

	return map[string]any{
		"education": education,
		"context":   d.freshness("Use this education data to understand Somesh's academic background and relevant coursework for resume tailoring"),
	}
}

func (d *Dispatcher) readToolGuide(ctx context.Context) map[string]any {
	summary := discovery.DiscoverAll(ctx, d.upstream)

	return map[string]any{
		"workflow": []string{
			"Call get_profile first to ground identity, skills, and availability",
			"Call list_projects with category/technology/featured filters to shortlist relevant work",
			"Call get_project_details for each shortlisted id to pull full content sections",
			"Call list_experiences and list_education when roles need history or credentials",
		},
		"tips": map[string]any{
			"contentTiers":    "tier1 projects are featured with curated detail - prefer them for resumes; tier3 projects have titles and tech only",
			"filters":         "list_projects filters are conjunctive; combine category and featured to narrow quickly",
			"knownCategories": CategoryEnum,
			"knownProjectIds": summary.ProjectIDs,
		},
		"context": d.freshness("Guide for AI assistants on combining the portfolio tools"),
	}
}

func (d *Dispatcher) readContentCoverage(ctx context.Context) map[string]any {
	projects, err := d.upstream.GetProjects(ctx)
	if err != nil {
		d.logger.Warn("content coverage degraded to fallback", "error", err)
		return map[string]any{
			"error":    "Failed to fetch live projects data",
			"fallback": true,
			"message":  "Coverage report unavailable while the portfolio connection is down",
		}
	}

	enriched := d.enrichAll(ctx, projects)

	tierCounts := map[string]int{portfolio.Tier1: 0, portfolio.Tier2: 0, portfolio.Tier3: 0}
	coverage := make([]map[string]any, len(enriched))
	for i, p := range enriched {
		tierCounts[p.ContentTier]++
		entry := map[string]any{
			"id":                 p.ID,
			"title":              p.Title,
			"featured":           p.Featured,
			"contentTier":        p.ContentTier,
			"hasDetailedContent": p.HasDetailedContent,
		}
		if p.DetailedContent != nil {
			entry["wordCount"] = p.DetailedContent.WordCount
		}
		coverage[i] = entry
	}

	return map[string]any{
		"totalProjects": len(enriched),
		"tierCounts":    tierCounts,
		"coverage":      coverage,
		"context":       d.freshness("Shows which projects carry curated detail worth requesting via get_project_details"),
	}
}
