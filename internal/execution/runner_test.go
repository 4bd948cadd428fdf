package execution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mtd/internal/compare"
	"mtd/internal/config"
	"mtd/internal/domain"
)

// writeScript installs an executable shell stub standing in for merced
func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", path, err)
	}
}

// doublerScript doubles the number in its input file and writes utfil,
// mimicking a well-behaved merced
const doublerScript = `echo "processing $1"
awk '{ print $1 * 2 }' "$1" > utfil
`

func newTestRunner(t *testing.T, execPath string) *Runner {
	t.Helper()
	cfg := config.New()
	cfg.Flags.ExecPath = execPath
	return NewRunner(cfg, compare.NewComparer(cfg))
}

func setupDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func fixtureFor(dir, suffix string) domain.Fixture {
	return domain.Fixture{
		Dir:    dir,
		Path:   filepath.Join(dir, "in."+suffix),
		Suffix: suffix,
	}
}

func TestRunner_CheckExecutable(t *testing.T) {
	t.Run("missing executable is fatal and names the path", func(t *testing.T) {
		runner := newTestRunner(t, "/nowhere/bin/merced")
		err := runner.CheckExecutable()
		if err == nil {
			t.Fatal("expected error for missing executable")
		}
		if !strings.Contains(err.Error(), "/nowhere/bin/merced") {
			t.Errorf("error should mention the expected path, got: %v", err)
		}
	})

	t.Run("existing executable passes", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "merced")
		writeScript(t, execPath, doublerScript)
		runner := newTestRunner(t, execPath)
		if err := runner.CheckExecutable(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestRunner_ProcessDirectory(t *testing.T) {
	execPath := filepath.Join(t.TempDir(), "merced")
	writeScript(t, execPath, doublerScript)

	t.Run("matching output passes", func(t *testing.T) {
		dir := setupDir(t, map[string]string{
			"in.1":  "42\n",
			"out.1": "84\n",
		})
		runner := newTestRunner(t, execPath)

		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(result.Results))
		}
		r := result.Results[0]
		if r.Status != domain.StatusPassed {
			t.Errorf("expected passed, got %s (err: %v)", r.Status, r.Err)
		}

		info, err := os.ReadFile(filepath.Join(dir, "1.info"))
		if err != nil {
			t.Fatalf("info file missing: %v", err)
		}
		if !strings.Contains(string(info), "processing") {
			t.Errorf("info file should hold merced's output, got %q", string(info))
		}

		snapshot, err := os.ReadFile(filepath.Join(dir, "out.1_new"))
		if err != nil {
			t.Fatalf("snapshot missing: %v", err)
		}
		if string(snapshot) != "84\n" {
			t.Errorf("expected snapshot 84, got %q", string(snapshot))
		}

		// No transient output file may survive in the test directory
		if _, err := os.Stat(filepath.Join(dir, "utfil")); err == nil {
			t.Error("utfil must not be left in the test directory")
		}
	})

	t.Run("differing output mismatches and keeps baseline", func(t *testing.T) {
		dir := setupDir(t, map[string]string{
			"in.1":  "42\n",
			"out.1": "99\n",
		})
		runner := newTestRunner(t, execPath)

		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := result.Results[0]
		if r.Status != domain.StatusMismatched {
			t.Errorf("expected mismatched, got %s", r.Status)
		}
		if r.BaselineMissing {
			t.Error("baseline exists, must not be flagged missing")
		}

		baseline, _ := os.ReadFile(filepath.Join(dir, "out.1"))
		if string(baseline) != "99\n" {
			t.Errorf("baseline must stay unmodified, got %q", string(baseline))
		}
		snapshot, _ := os.ReadFile(filepath.Join(dir, "out.1_new"))
		if string(snapshot) != "84\n" {
			t.Errorf("expected snapshot 84, got %q", string(snapshot))
		}
	})

	t.Run("missing baseline counts as mismatch", func(t *testing.T) {
		dir := setupDir(t, map[string]string{
			"in.1": "42\n",
		})
		runner := newTestRunner(t, execPath)

		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := result.Results[0]
		if r.Status != domain.StatusMismatched {
			t.Errorf("expected mismatched, got %s", r.Status)
		}
		if !r.BaselineMissing {
			t.Error("expected baseline-missing flag")
		}
		if _, err := os.Stat(filepath.Join(dir, "out.1_new")); err != nil {
			t.Errorf("snapshot must still be written: %v", err)
		}
	})

	t.Run("non-zero exit skips comparison and snapshot", func(t *testing.T) {
		failPath := filepath.Join(t.TempDir(), "merced")
		writeScript(t, failPath, "echo 'fatal: bad input' >&2\nexit 3\n")

		dir := setupDir(t, map[string]string{
			"in.1":  "42\n",
			"out.1": "84\n",
		})
		runner := newTestRunner(t, failPath)

		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := result.Results[0]
		if r.Status != domain.StatusExecFailed {
			t.Errorf("expected exec-failed, got %s", r.Status)
		}
		if r.Err == nil {
			t.Error("expected a per-fixture error")
		}

		// Stderr is captured in the log even on failure
		info, err := os.ReadFile(filepath.Join(dir, "1.info"))
		if err != nil {
			t.Fatalf("info file missing: %v", err)
		}
		if !strings.Contains(string(info), "fatal: bad input") {
			t.Errorf("info file should hold stderr, got %q", string(info))
		}

		if _, err := os.Stat(filepath.Join(dir, "out.1_new")); err == nil {
			t.Error("failed run must not write a snapshot")
		}
		baseline, _ := os.ReadFile(filepath.Join(dir, "out.1"))
		if string(baseline) != "84\n" {
			t.Errorf("baseline must stay unmodified, got %q", string(baseline))
		}
	})

	t.Run("zero exit without output file is a failure", func(t *testing.T) {
		silentPath := filepath.Join(t.TempDir(), "merced")
		writeScript(t, silentPath, "exit 0\n")

		dir := setupDir(t, map[string]string{
			"in.1":  "42\n",
			"out.1": "84\n",
		})
		runner := newTestRunner(t, silentPath)

		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1")}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := result.Results[0]
		if r.Status != domain.StatusExecFailed {
			t.Errorf("expected exec-failed, got %s", r.Status)
		}
		if r.Err == nil || !strings.Contains(r.Err.Error(), "no output file") {
			t.Errorf("expected no-output-file error, got %v", r.Err)
		}
	})

	t.Run("one failing fixture does not stop the directory", func(t *testing.T) {
		// Fails on in.1, doubles everything else
		pickyPath := filepath.Join(t.TempDir(), "merced")
		writeScript(t, pickyPath, `case "$1" in
*in.1) exit 1 ;;
esac
awk '{ print $1 * 2 }' "$1" > utfil
`)

		dir := setupDir(t, map[string]string{
			"in.1":  "1\n",
			"in.2":  "2\n",
			"out.2": "4\n",
		})
		runner := newTestRunner(t, pickyPath)

		var seen []string
		result, err := runner.ProcessDirectory(dir, []domain.Fixture{fixtureFor(dir, "1"), fixtureFor(dir, "2")},
			func(r domain.FixtureResult) {
				seen = append(seen, r.Fixture.Suffix)
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(result.Results))
		}
		if result.Results[0].Status != domain.StatusExecFailed {
			t.Errorf("expected in.1 exec-failed, got %s", result.Results[0].Status)
		}
		if result.Results[1].Status != domain.StatusPassed {
			t.Errorf("expected in.2 passed, got %s (err: %v)", result.Results[1].Status, result.Results[1].Err)
		}
		if len(seen) != 2 || seen[0] != "1" || seen[1] != "2" {
			t.Errorf("fixtures must run sequentially in order, got %v", seen)
		}
	})

	t.Run("repeated runs are idempotent", func(t *testing.T) {
		dir := setupDir(t, map[string]string{
			"in.1":  "42\n",
			"out.1": "84\n",
		})
		runner := newTestRunner(t, execPath)
		fixtures := []domain.Fixture{fixtureFor(dir, "1")}

		first, err := runner.ProcessDirectory(dir, fixtures, nil)
		if err != nil {
			t.Fatalf("first run: %v", err)
		}
		firstSnapshot, _ := os.ReadFile(filepath.Join(dir, "out.1_new"))

		second, err := runner.ProcessDirectory(dir, fixtures, nil)
		if err != nil {
			t.Fatalf("second run: %v", err)
		}
		secondSnapshot, _ := os.ReadFile(filepath.Join(dir, "out.1_new"))

		if first.Results[0].Status != second.Results[0].Status {
			t.Errorf("statuses differ across runs: %s vs %s", first.Results[0].Status, second.Results[0].Status)
		}
		if string(firstSnapshot) != string(secondSnapshot) {
			t.Error("snapshot content differs across identical runs")
		}
	})
}
