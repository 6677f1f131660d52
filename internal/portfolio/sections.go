package portfolio

import "strings"

// ParseSections splits a heading-delimited text blob into a mapping from
// normalized heading to section body. A line starting with "#" or "##"
// opens a new section; subsequent lines accumulate into it. Lines before
// the first heading are discarded. Bodies are trimmed of surrounding
// whitespace. Parsing is deterministic: the same input always yields the
// same mapping.
func ParseSections(text string) map[string]string {
	sections := make(map[string]string)
	if text == "" {
		return sections
	}

	var key string
	var buf []string

	flush := func() {
		if key == "" {
			return
		}
		sections[key] = strings.TrimSpace(strings.Join(buf, "\n"))
	}

	for _, line := range strings.Split(text, "\n") {
		if heading, ok := headingText(line); ok {
			flush()
			key = NormalizeSectionKey(heading)
			buf = buf[:0]
			continue
		}
		if key != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

// headingText returns the text of a markdown-style heading line, or
// ok=false if the line is not a heading.
func headingText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return strings.TrimLeft(trimmed, "#"), true
}

// NormalizeSectionKey lowercases heading text and strips every character
// outside [a-z0-9], so "Results & Impact" becomes "resultsimpact".
func NormalizeSectionKey(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CountWords returns the number of whitespace-delimited words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
