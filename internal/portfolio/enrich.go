package portfolio

// sectionAliases maps each canonical detailed-content field to the
// normalized section keys that may carry it, in probe order. First
// non-empty match wins.
var sectionAliases = map[string][]string{
	"projectOverview":         {"projectoverview", "overview", "about", "summary", "introduction"},
	"technicalImplementation": {"technicalimplementation", "implementation", "technicaldetails", "architecture", "howitworks"},
	"challengesSolutions":     {"challengessolutions", "challengesandsolutions", "challenges", "problemssolved"},
	"resultsImpact":           {"resultsimpact", "results", "impact", "outcomes", "achievements"},
	"futureEnhancements":      {"futureenhancements", "futurework", "future", "roadmap", "nextsteps"},
}

// resolveSection probes the alias list for the canonical field and
// returns the first non-empty section body, or "".
func resolveSection(sections map[string]string, field string) string {
	for _, key := range sectionAliases[field] {
		if body := sections[key]; body != "" {
			return body
		}
	}
	return ""
}

// TierFor applies the content-tier rule: tier1 iff featured and content
// present, tier2 iff content present and not featured, tier3 otherwise.
func TierFor(featured, hasContent bool) string {
	switch {
	case featured && hasContent:
		return Tier1
	case hasContent:
		return Tier2
	default:
		return Tier3
	}
}

// Enrich combines a project with its content blob (nil when the project
// has no detailed content) into an EnrichedProject. It performs no I/O;
// callers supply both inputs.
func Enrich(p Project, blob *ContentBlob) EnrichedProject {
	if blob == nil || blob.Content == "" {
		return EnrichedProject{
			Project:            p,
			HasDetailedContent: false,
			ContentTier:        TierFor(p.Featured, false),
			DetailedContent:    nil,
		}
	}

	sections := ParseSections(blob.Content)

	wordCount := blob.WordCount
	if wordCount == 0 {
		wordCount = CountWords(blob.Content)
	}

	detail := &DetailedContent{
		ProjectOverview:         resolveSection(sections, "projectOverview"),
		TechnicalImplementation: resolveSection(sections, "technicalImplementation"),
		ChallengesSolutions:     resolveSection(sections, "challengesSolutions"),
		ResultsImpact:           resolveSection(sections, "resultsImpact"),
		FutureEnhancements:      resolveSection(sections, "futureEnhancements"),
		Sections:                sections,
		RawContent:              blob.Content,
		WordCount:               wordCount,
		LastModified:            blob.LastModified,
	}

	return EnrichedProject{
		Project:            p,
		HasDetailedContent: true,
		ContentTier:        TierFor(p.Featured, true),
		DetailedContent:    detail,
	}
}
