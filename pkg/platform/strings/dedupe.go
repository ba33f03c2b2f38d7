// Package strings provides string slice helpers for request normalization.
package strings

import (
	"strings"
)

// DedupeFold trims each element, drops empties, and removes entries that
// equal an earlier one under Unicode case folding. The first spelling wins
// and order is preserved.
//
//	DedupeFold([]string{" km", "KM", "mi", ""})
//	// []string{"km", "mi"}
func DedupeFold(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}

// SplitList splits a comma separated list and applies DedupeFold.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeFold(strings.Split(s, ","))
}
