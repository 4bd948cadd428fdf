package execution

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"mtd/internal/compare"
	"mtd/internal/config"
	"mtd/internal/domain"
)

// Runner executes merced against single fixtures
type Runner struct {
	config   *config.Config
	comparer *compare.Comparer
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, comparer *compare.Comparer) *Runner {
	return &Runner{config: cfg, comparer: comparer}
}

// CheckExecutable verifies the merced executable exists before any fixture
// runs. A missing executable is a fatal precondition for the whole suite.
func (r *Runner) CheckExecutable() error {
	path := r.config.GetExecPath()
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("merced executable not found at %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("merced executable path is a directory: %s", path)
	}
	return nil
}

// ProcessDirectory runs every fixture of one test directory sequentially.
// onResult is called after each fixture completes. A returned error is a
// fatal filesystem problem that aborts the run; per-fixture merced failures
// are recorded in the results instead.
func (r *Runner) ProcessDirectory(dir string, fixtures []domain.Fixture, onResult func(domain.FixtureResult)) (domain.DirectoryResult, error) {
	dirResult := domain.DirectoryResult{Dir: dir}

	for _, fixture := range fixtures {
		result, err := r.runFixture(fixture)
		if err != nil {
			return dirResult, err
		}
		dirResult.Results = append(dirResult.Results, result)
		if onResult != nil {
			onResult(result)
		}
	}

	return dirResult, nil
}

// runFixture invokes merced once. The executable runs inside a private
// scratch directory so the utfil it writes can never be confused with output
// from another fixture, and the scratch space is released on every exit path.
func (r *Runner) runFixture(fixture domain.Fixture) (domain.FixtureResult, error) {
	result := domain.FixtureResult{
		Fixture:      fixture,
		BaselinePath: filepath.Join(fixture.Dir, fixture.BaselineName()),
		InfoPath:     filepath.Join(fixture.Dir, fixture.InfoName()),
	}

	execPath, err := filepath.Abs(r.config.GetExecPath())
	if err != nil {
		return result, fmt.Errorf("resolve executable path: %w", err)
	}
	inputPath, err := filepath.Abs(fixture.Path)
	if err != nil {
		return result, fmt.Errorf("resolve fixture path: %w", err)
	}

	scratch, err := os.MkdirTemp("", "mtd-*")
	if err != nil {
		return result, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, execPath, inputPath)
	cmd.Dir = scratch

	start := time.Now()
	output, runErr := cmd.CombinedOutput()
	result.Duration = time.Since(start)
	result.Output = string(output)

	// The log is written on success and on failure alike
	if err := os.WriteFile(result.InfoPath, output, 0644); err != nil {
		return result, fmt.Errorf("write log %s: %w", result.InfoPath, err)
	}

	if runErr != nil {
		result.Status = domain.StatusExecFailed
		result.Err = fmt.Errorf("merced failed for %s: %w", filepath.Base(fixture.Path), runErr)
		return result, nil
	}

	produced, err := os.ReadFile(filepath.Join(scratch, config.UtfilName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Status = domain.StatusExecFailed
			result.Err = fmt.Errorf("merced produced no output file for %s", filepath.Base(fixture.Path))
			return result, nil
		}
		return result, fmt.Errorf("read produced output: %w", err)
	}

	// Snapshot is written for every successful run, matched or not, so a new
	// baseline can be promoted later
	result.SnapshotPath = filepath.Join(fixture.Dir, fixture.SnapshotName())
	if err := os.WriteFile(result.SnapshotPath, produced, 0644); err != nil {
		return result, fmt.Errorf("write snapshot %s: %w", result.SnapshotPath, err)
	}

	equal, baselineMissing, err := r.comparer.Check(result.BaselinePath, produced)
	if err != nil {
		return result, err
	}
	result.BaselineMissing = baselineMissing
	if equal {
		result.Status = domain.StatusPassed
	} else {
		result.Status = domain.StatusMismatched
	}

	return result, nil
}
