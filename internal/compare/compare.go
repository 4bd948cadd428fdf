package compare

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"mtd/internal/config"
)

// Comparer checks produced output against baselines and invokes the external
// diff helper on mismatches
type Comparer struct {
	config *config.Config
}

// NewComparer creates a new Comparer
func NewComparer(cfg *config.Config) *Comparer {
	return &Comparer{config: cfg}
}

// Check compares produced bytes against the baseline file. A missing baseline
// is a mismatch with baselineMissing set; any other read error is returned.
func (c *Comparer) Check(baselinePath string, produced []byte) (equal bool, baselineMissing bool, err error) {
	baseline, err := os.ReadFile(baselinePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, true, nil
		}
		return false, false, fmt.Errorf("read baseline %s: %w", baselinePath, err)
	}
	return bytes.Equal(baseline, produced), false, nil
}

// Diff invokes the diff helper with the baseline and produced paths, letting
// its output pass through to the driver's own streams. The helper's exit code
// is not inspected; it runs for its printed output only.
func (c *Comparer) Diff(baselinePath, producedPath string) {
	cmd := exec.Command(c.config.GetDiffPath(), baselinePath, producedPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	_ = cmd.Run()
}
