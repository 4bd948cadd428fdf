package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mtd/internal/domain"
)

// Scanner locates test directories and the input fixtures inside them
type Scanner struct{}

// NewScanner creates a new Scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns every immediate subdirectory of the suite root, sorted.
// Hidden directories (starting with .) are skipped.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite root does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite root is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	sort.Strings(dirs)

	return dirs, nil
}

// Select resolves an explicit directory selection. Names that do not exist or
// are not directories are silently skipped, matching the historical driver
// behavior. With no names it falls back to Scan.
func (s *Scanner) Select(root string, names []string) ([]string, error) {
	if len(names) == 0 {
		return s.Scan(root)
	}

	var dirs []string
	for _, name := range names {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, name)
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}

	return dirs, nil
}

// Fixtures enumerates the in.<suffix> files of one test directory, sorted by
// name. Files named exactly "in." carry no test-case suffix and are ignored.
func (s *Scanner) Fixtures(dir string) ([]domain.Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read test directory %s: %w", dir, err)
	}

	var fixtures []domain.Fixture
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "in.") {
			continue
		}
		suffix := strings.TrimPrefix(name, "in.")
		if suffix == "" {
			continue
		}
		fixtures = append(fixtures, domain.Fixture{
			Dir:    dir,
			Path:   filepath.Join(dir, name),
			Suffix: suffix,
		})
	}
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Suffix < fixtures[j].Suffix
	})

	return fixtures, nil
}
