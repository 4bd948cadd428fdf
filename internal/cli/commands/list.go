package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mtd/internal/config"
	"mtd/internal/discovery"
	"mtd/internal/domain"
	"mtd/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	dirs, err := lc.scanner.Select(lc.config.GetSuiteRoot(), args)
	if err != nil {
		return err
	}

	if len(dirs) == 0 {
		color.Yellow("No test directories found")
		return nil
	}

	if !lc.config.Flags.ListFixtures {
		lc.formatter.PrintDirectoryList(dirs)
		return nil
	}

	jobs := make(map[string][]domain.Fixture, len(dirs))
	for _, dir := range dirs {
		fixtures, err := lc.scanner.Fixtures(dir)
		if err != nil {
			return err
		}
		jobs[dir] = lc.filter.BySuffix(fixtures, lc.config.Flags.NameFilter)
	}

	lc.formatter.PrintFixtureList(jobs, dirs)
	return nil
}
