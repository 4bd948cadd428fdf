package ui

import "mtd/internal/domain"

// Viewer displays stored run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
