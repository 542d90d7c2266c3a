// Package optimize reacts to finished export batches, shrinking any
// exported SVG files in place with the external svgo optimizer and
// signalling the outcome with a sound.
package optimize // import "github.com/svgpress/svgpress/optimize"

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/svgpress/svgpress/exporter"
)

// A Runner optimizes every SVG file in a single directory. A nil error
// means the optimizer ran and exited successfully.
type Runner interface {
	Optimize(dir string) error
}

// A Chime plays the completion cue for a finished batch.
type Chime interface {
	Play(success bool) error
}

type Manager struct {
	runner Runner
	chime  Chime
}

func NewManager(c *Config) *Manager {
	return &Manager{
		runner: &SVGORunner{Binary: c.SVGOPath},
		chime: &SoundChime{
			Player:       c.Player,
			SuccessSound: c.SuccessSound,
			FailureSound: c.FailureSound,
		},
	}
}

// HandleExportFinished processes one finished export batch.
//
// Only records whose format is exactly "svg" are considered; their
// containing directories are optimized once each, in first-seen order. A
// failed directory does not stop the remaining ones. Exactly one cue
// plays when at least one directory was processed: the success cue only
// if every directory succeeded. Batches with no SVGs are a no-op.
func (m *Manager) HandleExportFinished(b *exporter.Batch) {
	dirs := svgDirs(b)
	if len(dirs) == 0 {
		return
	}
	success := true
	for _, dir := range dirs {
		logrus.Infof("optimizing svg files in %s", dir)
		if err := m.runner.Optimize(dir); err != nil {
			logrus.Infof("✘ failed to optimize %s: %s", dir, err)
			success = false
			continue
		}
		logrus.Infof("✔ optimized %s", dir)
	}
	if err := m.chime.Play(success); err != nil {
		logrus.Warnln("unable to play completion sound:", err)
	}
}

// svgDirs returns the containing directory of every svg record in the
// batch, deduplicated in first-seen order.
func svgDirs(b *exporter.Batch) []string {
	var dirs []string
	for _, r := range b.Records {
		if r.Format != "svg" {
			continue
		}
		dirs = append(dirs, filepath.Dir(r.Path))
	}
	return uniqueStrings(dirs)
}

// uniqueStrings returns each distinct string exactly once, preserving
// first-seen order. Comparison is exact string equality; paths are not
// normalized or resolved.
func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
