package commands

import (
	"mtd/internal/cli"
	"mtd/internal/compare"
	"mtd/internal/config"
	"mtd/internal/discovery"
	"mtd/internal/execution"
	"mtd/internal/history"
	"mtd/internal/parser"
	"mtd/internal/storage"
	"mtd/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Promote  *PromoteCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner()
	filter := discovery.NewFilter()
	comparer := compare.NewComparer(cfg)
	runner := execution.NewRunner(cfg, comparer)
	logParser := parser.NewMercedLogParser()
	formatter := ui.NewFormatter(cfg)
	executor := execution.NewWorkerPool(cfg, runner, comparer, formatter)
	jsonStorage := storage.NewJSONStorage(cfg)
	recorder := history.NewDatabaseRecorder(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, runner, executor, logParser, jsonStorage, formatter, recorder),
		List:     NewListCommand(cfg, scanner, filter, formatter),
		Promote:  NewPromoteCommand(cfg, scanner, filter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [dir ...]",
		Short: "Run the merced regression suite",
		Long: `Run merced against every input fixture (in.<suffix>) of the selected test
directories and compare each produced output against its baseline (out.<suffix>).

With no arguments every immediate subdirectory of the suite root is selected.
Named directories are selected exactly; names that do not exist or are not
directories are silently skipped, so double-check for typos.`,
		RunE: c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.Processors > 0 {
				cfg.Processors = flags.Processors
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 1, "Number of directory workers (directories run in parallel, fixtures never do)")
	runCmd.Flags().StringVarP(&flags.SuiteRoot, "suite", "s", "", "Suite root directory (default: current directory)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixtures by suffix pattern (supports wildcards, e.g. 'n_*' or '*elastic*')")
	runCmd.Flags().StringVar(&flags.ExecPath, "exec", "", "Path to the merced executable (default ../bin/merced, or MERCED_PATH)")
	runCmd.Flags().StringVar(&flags.DiffPath, "diff", "", "Path to the diff helper (default ../bin/compareUtfils, or MERCED_DIFF)")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run summary to the MySQL history database")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [dir ...]",
		Short: "List test directories and fixtures",
		Long:  "List the selected test directories, or their input fixtures, without running merced",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.SuiteRoot, "suite", "s", "", "Suite root directory (default: current directory)")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixtures by suffix pattern")
	listCmd.Flags().BoolVarP(&flags.ListFixtures, "fixtures", "c", false, "List individual fixtures instead of directories")
	rootCmd.AddCommand(listCmd)

	// Promote command
	promoteCmd := &cobra.Command{
		Use:   "promote [dir ...]",
		Short: "Promote new-output snapshots to baselines",
		Long:  "Replace each baseline out.<suffix> with the out.<suffix>_new snapshot kept by the last run",
		RunE:  c.Promote.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	promoteCmd.Flags().StringVarP(&flags.SuiteRoot, "suite", "s", "", "Suite root directory (default: current directory)")
	promoteCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixtures by suffix pattern")
	rootCmd.AddCommand(promoteCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View last run's failures interactively",
		Long:  "Display mismatches and execution failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	failuresCmd.Flags().StringVarP(&flags.SuiteRoot, "suite", "s", "", "Suite root directory (default: current directory)")
	rootCmd.AddCommand(failuresCmd)
}
