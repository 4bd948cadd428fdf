package parser

import (
	"strings"
	"testing"
)

func TestMercedLogParser_Excerpt(t *testing.T) {
	p := NewMercedLogParser()

	t.Run("extracts error and warning lines", func(t *testing.T) {
		log := strings.Join([]string{
			"merced: reading evaluation",
			"WARNING: threshold outside grid",
			"interpolating cross section",
			"error: negative probability in bin 12",
			"",
			"done",
		}, "\n")

		excerpt := p.Excerpt(log)
		if len(excerpt) != 2 {
			t.Fatalf("expected 2 lines, got %d: %v", len(excerpt), excerpt)
		}
		if !strings.Contains(excerpt[0], "WARNING") {
			t.Errorf("expected warning line first, got %q", excerpt[0])
		}
		if !strings.Contains(excerpt[1], "error") {
			t.Errorf("expected error line second, got %q", excerpt[1])
		}
	})

	t.Run("clean log yields nothing", func(t *testing.T) {
		if excerpt := p.Excerpt("reading input\nwriting utfil\n"); excerpt != nil {
			t.Errorf("expected nil excerpt, got %v", excerpt)
		}
	})

	t.Run("excerpt is capped", func(t *testing.T) {
		log := strings.Repeat("WARNING: repeated\n", 50)
		if excerpt := p.Excerpt(log); len(excerpt) != maxExcerptLines {
			t.Errorf("expected %d lines, got %d", maxExcerptLines, len(excerpt))
		}
	})
}

func TestMercedLogParser_Counts(t *testing.T) {
	p := NewMercedLogParser()

	log := "WARNING: a\nerror: b\nWARNING: c\nfine\n"
	errors, warnings := p.Counts(log)
	if errors != 1 {
		t.Errorf("expected 1 error, got %d", errors)
	}
	if warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", warnings)
	}
}
