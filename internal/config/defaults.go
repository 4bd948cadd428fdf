package config

const (
	// DefaultSuiteRoot is the default suite root directory
	DefaultSuiteRoot = "."
	// DefaultExecPath is where the merced executable is expected, relative to the suite root
	DefaultExecPath = "../bin/merced"
	// DefaultDiffPath is where the diff helper is expected, relative to the suite root
	DefaultDiffPath = "../bin/compareUtfils"
	// DefaultOutputJSONFile is the default results file name
	DefaultOutputJSONFile = "merced-results.json"
	// DefaultOutputJSONDir is the default results directory under the suite root
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of directory workers
	DefaultProcessors = 1

	// EnvExecPath overrides DefaultExecPath when set
	EnvExecPath = "MERCED_PATH"
	// EnvDiffPath overrides DefaultDiffPath when set
	EnvDiffPath = "MERCED_DIFF"
)

// UtfilName is the fixed output file name merced writes in its working directory
const UtfilName = "utfil"
