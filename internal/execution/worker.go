package execution

import (
	"sync"
	"time"

	"mtd/internal/compare"
	"mtd/internal/config"
	"mtd/internal/domain"
	"mtd/internal/ui"
)

// WorkerPool distributes whole test directories across workers. Fixtures
// inside one directory always run sequentially; directory-level parallelism
// is safe because each fixture runs in its own scratch directory.
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	comparer *compare.Comparer
	reporter *ui.Formatter
	progress *ui.ProgressBar
	outputMu sync.Mutex
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, comparer *compare.Comparer, reporter *ui.Formatter) *WorkerPool {
	return &WorkerPool{
		config:   cfg,
		runner:   runner,
		comparer: comparer,
		reporter: reporter,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute processes the given directory jobs. With one worker (the default)
// directories run strictly in order; with more, each directory's report block
// still prints atomically, in completion order. The returned error is the
// first fatal filesystem error, if any; per-fixture failures never abort.
func (wp *WorkerPool) Execute(jobs []Job) ([]domain.DirectoryResult, time.Duration, error) {
	if len(jobs) == 0 {
		return nil, 0, nil
	}

	jobQueue := make(chan Job, len(jobs))
	results := make(chan domain.DirectoryResult, len(jobs))
	for _, job := range jobs {
		jobQueue <- job
	}
	close(jobQueue)

	var mu sync.Mutex
	var completed, passed, failed int
	var firstErr error
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobQueue {
				mu.Lock()
				aborted := firstErr != nil
				mu.Unlock()
				if aborted {
					continue
				}

				dirResult, err := wp.runner.ProcessDirectory(job.Dir, job.Fixtures, func(r domain.FixtureResult) {
					mu.Lock()
					completed++
					if r.Status == domain.StatusPassed {
						passed++
					} else {
						failed++
					}
					if wp.progress != nil {
						wp.progress.Update(completed, passed, failed)
					}
					mu.Unlock()
				})
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}

				wp.report(dirResult)
				results <- dirResult
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.DirectoryResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), firstErr
}

// report prints one directory's failures and mismatch diffs as a single
// block, fixture by fixture in processing order.
func (wp *WorkerPool) report(dirResult domain.DirectoryResult) {
	wp.outputMu.Lock()
	defer wp.outputMu.Unlock()

	for _, result := range dirResult.Results {
		switch result.Status {
		case domain.StatusExecFailed:
			wp.reporter.PrintExecFailure(result)
		case domain.StatusMismatched:
			wp.reporter.PrintMismatch(result)
			// The helper runs even when the baseline is missing; its own
			// complaint about the absent file is the user-visible signal
			wp.comparer.Diff(result.BaselinePath, result.SnapshotPath)
		}
	}
}
