package cli

import "mtd/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		SuiteRoot:    f.SuiteRoot,
		NameFilter:   f.NameFilter,
		ExecPath:     f.ExecPath,
		DiffPath:     f.DiffPath,
		Record:       f.Record,
		ListFixtures: f.ListFixtures,
	}
}
