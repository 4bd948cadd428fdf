package main

import (
	"fmt"
	"os"

	"mtd/internal/cli"
	"mtd/internal/cli/commands"
	"mtd/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "mtd",
		Short:   "Merced regression test driver",
		Long:    `A golden-file regression driver for the merced executable. Run merced against the input fixtures of each test directory, compare the produced output with checked-in baselines, and review or promote differences.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
