package optimize

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBinary is where svgo is expected to be installed.
const DefaultBinary = "/usr/local/bin/svgo"

// transforms applied on every run. convertShapeToPath is destructive for
// later editing, so it stays disabled; the rest strip editor cruft.
var (
	disabledTransforms = []string{"convertShapeToPath"}
	enabledTransforms  = []string{
		"removeTitle",
		"removeDesc",
		"removeDoctype",
		"removeEmptyAttrs",
		"removeUnknownsAndDefaults",
		"removeEditorsNSData",
	}
)

// SVGORunner invokes the svgo command-line optimizer on a directory,
// rewriting every SVG file in it in place.
type SVGORunner struct {
	// Binary is the path to the svgo executable.
	// DefaultBinary is used when empty.
	Binary string
}

func (r *SVGORunner) Optimize(dir string) error {
	bin := r.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	cmd := exec.Command(bin, optimizeArgs(dir)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrap(err, msg)
		}
		return err
	}
	return nil
}

// optimizeArgs builds the argument vector for one directory. The
// directory is passed as a discrete token, never interpolated into a
// shell string, so paths containing special characters are safe.
func optimizeArgs(dir string) []string {
	return []string{
		"--folder=" + dir,
		"--pretty",
		"--disable=" + strings.Join(disabledTransforms, ","),
		"--enable=" + strings.Join(enabledTransforms, ","),
	}
}
