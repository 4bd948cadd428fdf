package domain

// Fixture represents one input fixture file inside a test directory
type Fixture struct {
	Dir    string // Path to the test directory containing the fixture
	Path   string // Full path to the in.<suffix> file
	Suffix string // The part after "in." identifying the test case
}

// InfoName returns the name of the log file for this fixture
func (f Fixture) InfoName() string {
	return f.Suffix + ".info"
}

// BaselineName returns the name of the golden output file for this fixture
func (f Fixture) BaselineName() string {
	return "out." + f.Suffix
}

// SnapshotName returns the name of the new-output snapshot for this fixture
func (f Fixture) SnapshotName() string {
	return "out." + f.Suffix + "_new"
}
