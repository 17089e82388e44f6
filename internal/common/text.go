package common

import "strings"

// NormalizeSkills trims every skill name and drops the empty ones.
// Order and duplicates are preserved.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList splits a comma separated line into trimmed, non-empty items.
func SplitList(line string) []string {
	return NormalizeSkills(strings.Split(line, ","))
}
