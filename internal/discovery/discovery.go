// Package discovery derives the distinct project ids, domain tags, and
// technology tags from the live project list. Each derivation carries a
// static fallback that engages only when the upstream fetch itself fails;
// an empty-but-successful response is reported as-is.
package discovery

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

// ProjectSource is the slice of the upstream client discovery needs.
type ProjectSource interface {
	GetProjects(ctx context.Context) ([]portfolio.Project, error)
}

// Fallbacks used when the projects endpoint is unreachable. These are
// advisory defaults for schema hints, never a substitute for live data.
var (
	FallbackProjectIDs = []string{
		"portfolio-website",
		"introspect-ai",
		"carbonsense",
		"rage-chrome-extension",
		"reflectra-ai",
		"email-intent-analysis",
	}

	FallbackDomains = []string{
		"GenAI",
		"Machine Learning",
		"Computer Vision",
		"NLP",
		"Web & Cloud",
		"Data Engineering",
		"Embedded Systems",
	}

	FallbackTechnologies = []string{
		"AWS",
		"Docker",
		"FastAPI",
		"LangChain",
		"Next.js",
		"PyTorch",
		"Python",
		"RAG",
		"React",
		"TensorFlow",
		"TypeScript",
	}
)

// IDsOf returns the distinct non-empty project ids, in list order.
func IDsOf(projects []portfolio.Project) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range projects {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return ids
}

// DomainsOf returns the distinct domain tags across all projects,
// including single-valued categories. Ordering follows first appearance.
func DomainsOf(projects []portfolio.Project) []string {
	seen := make(map[string]bool)
	var domains []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		domains = append(domains, tag)
	}
	for _, p := range projects {
		add(p.Category)
		for _, d := range p.Domain {
			add(d)
		}
	}
	return domains
}

// TechnologiesOf returns the distinct technology tags across all
// projects, sorted lexicographically for deterministic output.
func TechnologiesOf(projects []portfolio.Project) []string {
	seen := make(map[string]bool)
	var techs []string
	for _, p := range projects {
		for _, t := range p.Technologies {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			techs = append(techs, t)
		}
	}
	sort.Strings(techs)
	return techs
}

// ProjectIDs fetches the project list and returns its distinct ids,
// falling back to the static list if the fetch fails.
func ProjectIDs(ctx context.Context, src ProjectSource) []string {
	projects, err := src.GetProjects(ctx)
	if err != nil {
		return FallbackProjectIDs
	}
	return IDsOf(projects)
}

// Domains fetches the project list and returns its distinct domain tags,
// falling back to the static list if the fetch fails.
func Domains(ctx context.Context, src ProjectSource) []string {
	projects, err := src.GetProjects(ctx)
	if err != nil {
		return FallbackDomains
	}
	return DomainsOf(projects)
}

// Technologies fetches the project list and returns its sorted distinct
// technology tags, falling back to the static list if the fetch fails.
func Technologies(ctx context.Context, src ProjectSource) []string {
	projects, err := src.GetProjects(ctx)
	if err != nil {
		return FallbackTechnologies
	}
	return TechnologiesOf(projects)
}

// Summary aggregates every discovery derivation over one project fetch.
type Summary struct {
	ProjectIDs    []string `json:"projectIds"`
	Domains       []string `json:"domains"`
	Technologies  []string `json:"technologies"`
	TotalProjects int      `json:"totalProjects"`
	FeaturedCount int      `json:"featuredCount"`
	Fallback      bool     `json:"fallback,omitempty"`
}

// DiscoverAll fetches the project list once and derives all discovery
// facts from it, running the independent derivations concurrently. On
// fetch failure it returns the static fallbacks with Fallback set.
func DiscoverAll(ctx context.Context, src ProjectSource) Summary {
	projects, err := src.GetProjects(ctx)
	if err != nil {
		return Summary{
			ProjectIDs:    FallbackProjectIDs,
			Domains:       FallbackDomains,
			Technologies:  FallbackTechnologies,
			TotalProjects: len(FallbackProjectIDs),
			Fallback:      true,
		}
	}

	var s Summary
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.ProjectIDs = IDsOf(projects)
		return nil
	})
	g.Go(func() error {
		s.Domains = DomainsOf(projects)
		return nil
	})
	g.Go(func() error {
		s.Technologies = TechnologiesOf(projects)
		return nil
	})
	g.Wait()

	s.TotalProjects = len(s.ProjectIDs)
	for _, p := range projects {
		if p.Featured {
			s.FeaturedCount++
		}
	}
	return s
}
