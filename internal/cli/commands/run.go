package commands

import (
	"fmt"
	"path/filepath"

	"mtd/internal/config"
	"mtd/internal/discovery"
	"mtd/internal/domain"
	"mtd/internal/execution"
	"mtd/internal/history"
	"mtd/internal/parser"
	"mtd/internal/storage"
	"mtd/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	runner    *execution.Runner
	executor  *execution.WorkerPool
	parser    *parser.MercedLogParser
	storage   storage.Storage
	formatter *ui.Formatter
	recorder  history.Recorder
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	runner *execution.Runner,
	executor *execution.WorkerPool,
	logParser *parser.MercedLogParser,
	st storage.Storage,
	formatter *ui.Formatter,
	recorder history.Recorder,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		runner:    runner,
		executor:  executor,
		parser:    logParser,
		storage:   st,
		formatter: formatter,
		recorder:  recorder,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Fatal precondition: no executable, no run
	if err := rc.runner.CheckExecutable(); err != nil {
		return err
	}

	dirs, err := rc.scanner.Select(rc.config.GetSuiteRoot(), args)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		color.Yellow("No test directories selected")
		return nil
	}

	jobs, total, err := rc.collectJobs(dirs)
	if err != nil {
		return err
	}
	if total == 0 {
		color.Yellow("No fixtures to run")
		return nil
	}

	progressBar := ui.NewProgressBar(total)
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.Execute(jobs)
	if err != nil {
		return err
	}

	failures := rc.collectFailures(results)

	if err := rc.storage.Save(results, failures, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	if rc.config.Flags.Record {
		rc.recordHistory(results)
	}

	// Mismatches and per-fixture failures never change the driver's exit code
	return rc.formatter.PrintMetaStats()
}

// collectJobs enumerates and filters the fixtures of each selected directory
func (rc *RunCommand) collectJobs(dirs []string) ([]execution.Job, int, error) {
	var jobs []execution.Job
	total := 0
	for _, dir := range dirs {
		fixtures, err := rc.scanner.Fixtures(dir)
		if err != nil {
			return nil, 0, err
		}
		fixtures = rc.filter.BySuffix(fixtures, rc.config.Flags.NameFilter)
		jobs = append(jobs, execution.Job{Dir: dir, Fixtures: fixtures})
		total += len(fixtures)
	}
	return jobs, total, nil
}

// collectFailures builds the stored failure details for every fixture that
// did not pass
func (rc *RunCommand) collectFailures(results []domain.DirectoryResult) []domain.FixtureFailure {
	var failures []domain.FixtureFailure
	for _, dirResult := range results {
		for _, r := range dirResult.Results {
			if r.Status == domain.StatusPassed {
				continue
			}

			failure := domain.FixtureFailure{
				Directory:       filepath.Base(dirResult.Dir),
				Fixture:         "in." + r.Fixture.Suffix,
				Suffix:          r.Fixture.Suffix,
				Status:          r.Status.String(),
				BaselineMissing: r.BaselineMissing,
				LogExcerpt:      rc.parser.Excerpt(r.Output),
				BaselinePath:    r.BaselinePath,
				SnapshotPath:    r.SnapshotPath,
			}
			switch {
			case r.Err != nil:
				failure.Message = r.Err.Error()
			case r.BaselineMissing:
				failure.Message = fmt.Sprintf("no baseline %s", r.Fixture.BaselineName())
			default:
				failure.Message = fmt.Sprintf("output differs from %s", r.Fixture.BaselineName())
			}
			failures = append(failures, failure)
		}
	}
	return failures
}

// recordHistory pushes the run summary to the history database; failures
// here are warnings only
func (rc *RunCommand) recordHistory(results []domain.DirectoryResult) {
	output, err := rc.storage.Load()
	if err != nil {
		color.Yellow("warning: history not recorded: %v", err)
		return
	}
	if err := rc.recorder.Record(output.Meta, results); err != nil {
		color.Yellow("warning: history not recorded: %v", err)
	}
}
