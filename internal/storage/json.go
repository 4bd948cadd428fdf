package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mtd/internal/domain"
)

// Save writes run results and failure details to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.DirectoryResult, failures []domain.FixtureFailure, duration time.Duration, workers int) error {
	var fixtures, passed, mismatched, execFailed int
	for _, dirResult := range results {
		for _, r := range dirResult.Results {
			fixtures++
			switch r.Status {
			case domain.StatusPassed:
				passed++
			case domain.StatusMismatched:
				mismatched++
			case domain.StatusExecFailed:
				execFailed++
			}
		}
	}

	output := domain.RunOutput{
		Meta: domain.RunMeta{
			TotalDirectories: len(results),
			TotalFixtures:    fixtures,
			Passed:           passed,
			Mismatched:       mismatched,
			ExecFailed:       execFailed,
			Duration:         duration.String(),
			DurationSeconds:  duration.Seconds(),
			Workers:          workers,
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}

	return s.SaveOutput(&output)
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
