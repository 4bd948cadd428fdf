package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mtd/internal/config"
	"mtd/internal/discovery"
)

// PromoteCommand replaces baselines with the snapshots from the last run
type PromoteCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
}

// NewPromoteCommand creates a new PromoteCommand
func NewPromoteCommand(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) *PromoteCommand {
	return &PromoteCommand{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
	}
}

// Execute runs the command
func (pc *PromoteCommand) Execute(cmd *cobra.Command, args []string) error {
	dirs, err := pc.scanner.Select(pc.config.GetSuiteRoot(), args)
	if err != nil {
		return err
	}

	promoted := 0
	for _, dir := range dirs {
		fixtures, err := pc.scanner.Fixtures(dir)
		if err != nil {
			return err
		}
		fixtures = pc.filter.BySuffix(fixtures, pc.config.Flags.NameFilter)

		for _, fixture := range fixtures {
			snapshot := filepath.Join(dir, fixture.SnapshotName())
			if _, err := os.Stat(snapshot); err != nil {
				continue
			}
			baseline := filepath.Join(dir, fixture.BaselineName())
			if err := os.Rename(snapshot, baseline); err != nil {
				return fmt.Errorf("promote %s: %w", snapshot, err)
			}
			fmt.Printf("  %s -> %s\n", snapshot, baseline)
			promoted++
		}
	}

	if promoted == 0 {
		color.Yellow("No snapshots to promote")
		return nil
	}
	color.Green("Promoted %d baseline(s)", promoted)
	return nil
}
