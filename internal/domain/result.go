package domain

import "time"

// FixtureStatus classifies the outcome of running one fixture
type FixtureStatus int

const (
	// StatusPassed means merced succeeded and the output matched the baseline
	StatusPassed FixtureStatus = iota
	// StatusMismatched means merced succeeded but the output differed from the baseline
	StatusMismatched
	// StatusExecFailed means merced exited non-zero or produced no output file
	StatusExecFailed
)

// String returns the status name used in reports and storage
func (s FixtureStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusMismatched:
		return "mismatched"
	case StatusExecFailed:
		return "exec-failed"
	}
	return "unknown"
}

// FixtureResult represents the result of running merced against one fixture
type FixtureResult struct {
	Fixture         Fixture
	Status          FixtureStatus
	BaselineMissing bool          // True when out.<suffix> did not exist (counts as mismatch)
	Output          string        // Combined stdout+stderr of the merced run
	Err             error         // Execution error when Status is StatusExecFailed
	Duration        time.Duration // Time taken by the merced invocation
	BaselinePath    string        // Path to out.<suffix>
	SnapshotPath    string        // Path to out.<suffix>_new (empty when the run failed)
	InfoPath        string        // Path to <suffix>.info
}

// DirectoryResult groups the fixture results of one test directory
type DirectoryResult struct {
	Dir     string
	Results []FixtureResult
}

// RunMeta contains metadata about a driver run
type RunMeta struct {
	TotalDirectories int     `json:"total_directories"`
	TotalFixtures    int     `json:"total_fixtures"`
	Passed           int     `json:"passed"`
	Mismatched       int     `json:"mismatched"`
	ExecFailed       int     `json:"exec_failed"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Workers          int     `json:"workers"`
	Timestamp        string  `json:"timestamp"`
}

// RunOutput is the complete stored structure for a driver run
type RunOutput struct {
	Meta    RunMeta          `json:"meta"`
	Details []FixtureFailure `json:"details"`
}
