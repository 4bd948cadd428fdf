package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the driver
type Config struct {
	// Suite settings
	SuiteRoot string

	// Collaborator executables
	ExecPath string
	DiffPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors   int
	SuiteRoot    string
	NameFilter   string
	ExecPath     string
	DiffPath     string
	Record       bool
	ListFixtures bool
}

// New creates a new Config with defaults. A .env file in the working
// directory is loaded best-effort so MERCED_PATH/MERCED_DIFF and the DB_*
// history settings can live next to the suite.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		SuiteRoot:      DefaultSuiteRoot,
		ExecPath:       DefaultExecPath,
		DiffPath:       DefaultDiffPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}

	return cfg
}

// GetSuiteRoot returns the suite root, using the flag if provided
func (c *Config) GetSuiteRoot() string {
	if c.Flags.SuiteRoot != "" {
		return c.Flags.SuiteRoot
	}
	return c.SuiteRoot
}

// GetExecPath returns the merced executable path: flag, then environment,
// then default. Relative paths are interpreted from the driver's working
// directory, matching the original suite layout.
func (c *Config) GetExecPath() string {
	if c.Flags.ExecPath != "" {
		return c.Flags.ExecPath
	}
	if env := os.Getenv(EnvExecPath); env != "" {
		return env
	}
	return c.ExecPath
}

// GetDiffPath returns the diff helper path: flag, then environment, then default
func (c *Config) GetDiffPath() string {
	if c.Flags.DiffPath != "" {
		return c.Flags.DiffPath
	}
	if env := os.Getenv(EnvDiffPath); env != "" {
		return env
	}
	return c.DiffPath
}

// GetOutputPath returns the full path to the results JSON file (under the suite
// root so run and failures use the same file). Resolves to an absolute path so
// both commands read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.GetSuiteRoot(), c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
