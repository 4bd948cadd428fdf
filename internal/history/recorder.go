package history

import (
	"mtd/internal/domain"
)

// Recorder persists run summaries for later trend inspection
type Recorder interface {
	Record(meta domain.RunMeta, results []domain.DirectoryResult) error
}
