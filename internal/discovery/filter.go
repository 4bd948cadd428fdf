package discovery

import (
	"path/filepath"
	"strings"

	"mtd/internal/domain"
)

// Filter filters fixtures by suffix pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// BySuffix filters fixtures by suffix pattern using wildcard matching.
// Supports patterns like "neutron*" or "*elastic*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) BySuffix(fixtures []domain.Fixture, pattern string) []domain.Fixture {
	if pattern == "" {
		return fixtures
	}

	var filtered []domain.Fixture

	for _, fixture := range fixtures {
		if matchName(fixture.Suffix, pattern) {
			filtered = append(filtered, fixture)
		}
	}

	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// Flexible fallback for patterns like "*elastic*": every non-empty part
	// between wildcards must appear in the name.
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// No wildcards: simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}

	return false
}
