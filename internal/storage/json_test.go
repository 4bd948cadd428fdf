package storage

import (
	"testing"
	"time"

	"mtd/internal/config"
	"mtd/internal/domain"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := config.New()
	cfg.Flags.SuiteRoot = t.TempDir()
	st := NewJSONStorage(cfg)

	results := []domain.DirectoryResult{
		{
			Dir: "elastic",
			Results: []domain.FixtureResult{
				{Status: domain.StatusPassed},
				{Status: domain.StatusMismatched},
			},
		},
		{
			Dir: "capture",
			Results: []domain.FixtureResult{
				{Status: domain.StatusExecFailed},
			},
		},
	}
	failures := []domain.FixtureFailure{
		{Directory: "elastic", Suffix: "2", Status: "mismatched"},
		{Directory: "capture", Suffix: "1", Status: "exec-failed", Message: "exit status 1"},
	}

	if err := st.Save(results, failures, 3*time.Second, 2); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	output, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	meta := output.Meta
	if meta.TotalDirectories != 2 {
		t.Errorf("expected 2 directories, got %d", meta.TotalDirectories)
	}
	if meta.TotalFixtures != 3 {
		t.Errorf("expected 3 fixtures, got %d", meta.TotalFixtures)
	}
	if meta.Passed != 1 || meta.Mismatched != 1 || meta.ExecFailed != 1 {
		t.Errorf("unexpected counts: passed=%d mismatched=%d exec_failed=%d",
			meta.Passed, meta.Mismatched, meta.ExecFailed)
	}
	if len(output.Details) != 2 {
		t.Fatalf("expected 2 failure details, got %d", len(output.Details))
	}
	if output.Details[1].Message != "exit status 1" {
		t.Errorf("unexpected message: %q", output.Details[1].Message)
	}

	t.Run("resolved flags round-trip", func(t *testing.T) {
		output.Details[0].Resolved = true
		if err := st.SaveOutput(output); err != nil {
			t.Fatalf("save output failed: %v", err)
		}
		reloaded, err := st.Load()
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if !reloaded.Details[0].Resolved {
			t.Error("expected first failure to stay resolved")
		}
	})
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.Flags.SuiteRoot = t.TempDir()
	st := NewJSONStorage(cfg)

	if _, err := st.Load(); err == nil {
		t.Error("expected error loading missing results file")
	}
}
