package dto

import "strings"

// CollapseWhitespace replaces every maximal run of whitespace with a single
// space and trims the ends. Idempotent.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dedupeTags drops repeated tags while preserving first-seen order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
