package domain

// FixtureFailure represents one mismatched or failed fixture from a run
type FixtureFailure struct {
	Directory       string   `json:"directory"`
	Fixture         string   `json:"fixture"` // The in.<suffix> file name
	Suffix          string   `json:"suffix"`
	Status          string   `json:"status"` // "mismatched" or "exec-failed"
	BaselineMissing bool     `json:"baseline_missing,omitempty"`
	Message         string   `json:"message"`
	LogExcerpt      []string `json:"log_excerpt,omitempty"` // Error/warning lines from the .info log
	BaselinePath    string   `json:"baseline_path,omitempty"`
	SnapshotPath    string   `json:"snapshot_path,omitempty"`
	Resolved        bool     `json:"resolved,omitempty"` // Track if failure is marked as reviewed
}
