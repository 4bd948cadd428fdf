package parser

import (
	"regexp"
	"strings"
)

// MercedLogParser extracts diagnostics from captured merced output
type MercedLogParser struct{}

// NewMercedLogParser creates a new MercedLogParser
func NewMercedLogParser() *MercedLogParser {
	return &MercedLogParser{}
}

var (
	errorLinePattern   = regexp.MustCompile(`(?i)^\s*(fatal|error)\b|:\s*error\b`)
	warningLinePattern = regexp.MustCompile(`(?i)\bwarning\b`)
)

// maxExcerptLines caps how much of a log is carried into results storage
const maxExcerptLines = 20

// Excerpt returns the error and warning lines from a merced log, capped at
// maxExcerptLines. Parsing is best-effort; an unrecognized log yields nil.
func (p *MercedLogParser) Excerpt(output string) []string {
	var excerpt []string

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" {
			continue
		}
		if errorLinePattern.MatchString(trimmed) || warningLinePattern.MatchString(trimmed) {
			excerpt = append(excerpt, trimmed)
			if len(excerpt) == maxExcerptLines {
				break
			}
		}
	}

	return excerpt
}

// Counts returns the number of error and warning lines in a merced log
func (p *MercedLogParser) Counts(output string) (errors, warnings int) {
	for _, line := range strings.Split(output, "\n") {
		switch {
		case errorLinePattern.MatchString(line):
			errors++
		case warningLinePattern.MatchString(line):
			warnings++
		}
	}
	return errors, warnings
}
