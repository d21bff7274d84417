package matching

import (
	"sort"
	"strings"
)

// Normalize lower-cases s, trims it and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// equalFold reports whether both values are present and equal after
// normalization. Two absent values never match.
func equalFold(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// normalizedSet drops blanks and duplicates.
func normalizedSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Intersect returns the sorted normalized members present in both inputs.
// Intersect(a, b) and Intersect(b, a) are always equal.
func Intersect(a, b []string) []string {
	return intersectSets(normalizedSet(a), normalizedSet(b))
}

func intersectSets(a, b map[string]struct{}) []string {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make([]string, 0, len(a))
	for v := range a {
		if _, ok := b[v]; ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
