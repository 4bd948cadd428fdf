package execution

import (
	"time"

	"mtd/internal/domain"
)

// Job is one test directory with its selected fixtures
type Job struct {
	Dir      string
	Fixtures []domain.Fixture
}

// Executor processes test directories and returns results
type Executor interface {
	Execute(jobs []Job) ([]domain.DirectoryResult, time.Duration, error)
}
