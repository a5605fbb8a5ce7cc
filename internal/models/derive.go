package models

import (
	"regexp"
	"strings"
)

var careerTypeDelims = regexp.MustCompile(`[/,|]`)

// SplitCSV splits a raw comma-separated source string into trimmed,
// non-empty tokens.
func SplitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitCareerType tokenizes a recruit-type value. Combined values such as
// "신입/경력" additionally emit both "신입" and "경력" so they surface as
// separate facets.
func SplitCareerType(value string) []string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil
	}

	parts := careerTypeDelims.Split(raw, -1)
	out := make([]string, 0, len(parts)+2)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	if strings.Contains(raw, "신입") {
		out = append(out, "신입")
	}
	if strings.Contains(raw, "경력") {
		out = append(out, "경력")
	}
	return out
}

// BuildSearchText joins the non-empty human-readable fields into one blob
// used for case-insensitive substring search.
func BuildSearchText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Truncate shortens value to maxRunes runes, appending an ellipsis marker
// when anything was cut.
func Truncate(value string, maxRunes int) string {
	runes := []rune(value)
	if len(runes) <= maxRunes {
		return value
	}
	return string(runes[:maxRunes]) + "..."
}

// OngoingFromFlag interprets the source's tri-state ongoing flag: a posting
// is open unless the source explicitly marks it "N".
func OngoingFromFlag(flag string) bool {
	flag = strings.ToUpper(strings.TrimSpace(flag))
	if flag == "" {
		return true
	}
	return flag != "N"
}
