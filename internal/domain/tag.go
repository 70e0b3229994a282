package domain

import "strings"

// Tag is a label shared across any number of posts. Names are globally unique.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NormalizeTagNames trims every name, drops empty ones and removes exact
// duplicates. The first occurrence of each name keeps its position.
// The result is never nil.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// TagIDs returns the ids of tags in order.
func TagIDs(tags []Tag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
