// Package portfolio defines the domain model for portfolio data and the
// pure derivations over it: section parsing of project content blobs and
// content-tier enrichment. Nothing in this package performs network I/O.
package portfolio

import "encoding/json"

// Profile is the upstream profile record, passed through opaquely.
type Profile map[string]any

// StringList unmarshals from either a JSON string or an array of strings.
// The upstream API is inconsistent about whether domain is one tag or many.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
		} else {
			*s = StringList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// Contains reports whether v is one of the list's elements.
func (s StringList) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Project is one portfolio project. ID is the sole stable key; Title is
// not guaranteed unique and is never used for lookup.
type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category,omitempty"`
	Domain       StringList `json:"domain,omitempty"`
	Technologies []string   `json:"tech,omitempty"`
	Featured     bool       `json:"featured"`
	Year         string     `json:"year,omitempty"`
	Links        map[string]string `json:"links,omitempty"`
	Content      string     `json:"content,omitempty"`
	LastModified string     `json:"lastModified,omitempty"`
}

// InDomain reports whether the project carries the given domain/category
// tag, checking both the single-valued category and the domain tag list.
func (p Project) InDomain(tag string) bool {
	return p.Category == tag || p.Domain.Contains(tag)
}

// ContentBlob is the raw detail text for one project plus its derived
// metadata. Absence of a blob is a normal state, not an error.
type ContentBlob struct {
	Content      string `json:"content"`
	WordCount    int    `json:"wordCount"`
	LastModified string `json:"lastModified,omitempty"`
}

// Content tiers, best to least. Tier assignment is a pure function of
// (featured, content present) and must agree everywhere it is computed.
const (
	Tier1 = "tier1" // featured and has detailed content
	Tier2 = "tier2" // has detailed content, not featured
	Tier3 = "tier3" // no detailed content
)

// DetailedContent is the canonical shape derived from a parsed content
// blob. Sections holds the full normalized-key mapping; the named fields
// are resolved through ordered alias probing.
type DetailedContent struct {
	ProjectOverview         string            `json:"projectOverview"`
	TechnicalImplementation string            `json:"technicalImplementation"`
	ChallengesSolutions     string            `json:"challengesSolutions"`
	ResultsImpact           string            `json:"resultsImpact"`
	FutureEnhancements      string            `json:"futureEnhancements,omitempty"`
	Sections                map[string]string `json:"sections"`
	RawContent              string            `json:"rawContent"`
	WordCount               int               `json:"wordCount"`
	LastModified            string            `json:"lastModified,omitempty"`
}

// EnrichedProject is a Project combined with its content classification.
// Constructed fresh per request, never persisted or mutated.
type EnrichedProject struct {
	Project
	HasDetailedContent bool             `json:"hasDetailedContent"`
	ContentTier        string           `json:"contentTier"`
	DetailedContent    *DetailedContent `json:"detailedContent"`
}

// Experience is one work history entry.
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Location     string   `json:"location,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one academic record.
type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree,omitempty"`
	Field       string   `json:"field,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Coursework  []string `json:"coursework,omitempty"`
}
