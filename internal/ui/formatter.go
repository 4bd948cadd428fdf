package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"mtd/internal/config"
	"mtd/internal/domain"
)

// Formatter formats and displays driver output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintExecFailure prints a clearly delimited block for a fixture whose
// merced run failed
func (f *Formatter) PrintExecFailure(result domain.FixtureResult) {
	dir := filepath.Base(result.Fixture.Dir)
	color.Red("──────────────────────────────────────────────────────────────")
	color.Red("✗ merced failed: %s/in.%s", dir, result.Fixture.Suffix)
	if result.Err != nil {
		color.Red("  %v", result.Err)
	}
	color.Red("  log: %s", result.InfoPath)
	color.Red("──────────────────────────────────────────────────────────────")
}

// PrintMismatch prints the header for a baseline mismatch; the diff helper's
// output follows it
func (f *Formatter) PrintMismatch(result domain.FixtureResult) {
	dir := filepath.Base(result.Fixture.Dir)
	if result.BaselineMissing {
		color.Yellow("? no baseline for %s/in.%s (new output in %s)", dir, result.Fixture.Suffix, result.SnapshotPath)
		return
	}
	color.Yellow("≠ %s/in.%s differs from baseline:", dir, result.Fixture.Suffix)
}

// PrintDirectoryList prints the selected test directories
func (f *Formatter) PrintDirectoryList(dirs []string) {
	color.Cyan("Test directories (%d):", len(dirs))
	for _, dir := range dirs {
		fmt.Printf("  %s\n", dir)
	}
}

// PrintFixtureList prints the selected fixtures grouped by directory
func (f *Formatter) PrintFixtureList(jobs map[string][]domain.Fixture, dirs []string) {
	total := 0
	for _, dir := range dirs {
		fixtures := jobs[dir]
		color.Cyan("%s (%d fixtures):", dir, len(fixtures))
		for _, fixture := range fixtures {
			fmt.Printf("  in.%s\n", fixture.Suffix)
			total++
		}
	}
	fmt.Println()
	color.White("Total: %d fixtures", total)
}

// PrintMetaStats reads back the stored results and displays run statistics
func (f *Formatter) PrintMetaStats() error {
	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse results: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Merced Regression Results                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Test Directories")
	color.White("%-27d │\n", meta.TotalDirectories)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Fixtures")
	color.White("%-27d │\n", meta.TotalFixtures)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed")
	color.Green("%-27d │\n", meta.Passed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Mismatched")
	color.Red("%-27d │\n", meta.Mismatched)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Execution Failures")
	color.Red("%-27d │\n", meta.ExecFailed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	if meta.Mismatched > 0 || meta.ExecFailed > 0 {
		fmt.Println()
		color.Yellow("Run 'mtd failures' to review, 'mtd promote' to accept new baselines.")
	}

	return nil
}
