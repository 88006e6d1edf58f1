package utils

import "strings"

// ParseQueryList handles both repeated and comma-separated params, and any
// mix of the two. Empty entries are kept so callers can decide how to treat
// them.
// Example:
//
//	?items=1,2          → ["1","2"]
//	?items=1&items=2    → ["1","2"]
//	?items=1,2&items=3  → ["1","2","3"]
func ParseQueryList(q map[string][]string, key string) []string {
	values := q[key]

	if len(values) == 0 {
		return nil
	}

	var parts []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return parts
}
