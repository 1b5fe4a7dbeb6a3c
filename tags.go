package main

import "strings"

// Tag sets are persisted as a single semicolon-joined column. These helpers are
// the only codec between the scalar form and the in-memory set form.

const tagSeparator = ";"

// splitTags parses a delimited tag scalar. Blank values and leftovers from
// sloppy exports ("nan", "NaN") decode to an empty set, never an error.
func splitTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	return dedupeTags(strings.Split(s, tagSeparator))
}

// joinTags serializes a tag set back to the scalar column form.
func joinTags(tags []string) string {
	return strings.Join(dedupeTags(tags), tagSeparator)
}

// dedupeTags trims each tag and drops empties and duplicates, keeping first
// occurrence order so round-trips are stable.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// overlapCount returns |a ∩ b|.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// isOpenPreference reports whether a preference tag set imposes no constraint:
// either empty or explicitly containing "any".
func isOpenPreference(tags []string) bool {
	return len(tags) == 0 || containsTag(tags, TagAny)
}
