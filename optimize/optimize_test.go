package optimize

import (
	"testing"

	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgpress/svgpress/exporter"
)

type fakeRunner struct {
	calls []string
	fail  map[string]bool
}

func (r *fakeRunner) Optimize(dir string) error {
	r.calls = append(r.calls, dir)
	if r.fail[dir] {
		return errors.New("exit status 1")
	}
	return nil
}

type fakeChime struct {
	played []bool
}

func (c *fakeChime) Play(success bool) error {
	c.played = append(c.played, success)
	return nil
}

func batchOf(records ...exporter.Record) *exporter.Batch {
	return &exporter.Batch{ID: "test", Records: records}
}

func TestHandleExportFinished_SharedDirectory(t *testing.T) {
	r := &fakeRunner{}
	c := &fakeChime{}
	m := &Manager{runner: r, chime: c}

	m.HandleExportFinished(batchOf(
		exporter.Record{Path: "/out/a/x.svg", Format: "svg"},
		exporter.Record{Path: "/out/a/y.svg", Format: "svg"},
		exporter.Record{Path: "/out/b/z.png", Format: "png"},
	))

	// both svgs share /out/a, the png is ignored
	assert.Equal(t, []string{"/out/a"}, r.calls)
	assert.Equal(t, []bool{true}, c.played)
}

func TestHandleExportFinished_FailureDoesNotHalt(t *testing.T) {
	r := &fakeRunner{fail: map[string]bool{"/out/a": true}}
	c := &fakeChime{}
	m := &Manager{runner: r, chime: c}

	m.HandleExportFinished(batchOf(
		exporter.Record{Path: "/out/a/x.svg", Format: "svg"},
		exporter.Record{Path: "/out/b/y.svg", Format: "svg"},
	))

	// the failed directory does not stop the second one
	assert.Equal(t, []string{"/out/a", "/out/b"}, r.calls)
	// one failure makes the whole batch a failure
	assert.Equal(t, []bool{false}, c.played)
}

func TestHandleExportFinished_EmptyBatch(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	r := &fakeRunner{}
	c := &fakeChime{}
	m := &Manager{runner: r, chime: c}

	m.HandleExportFinished(batchOf())

	assert.Empty(t, r.calls)
	assert.Empty(t, c.played)
	assert.Empty(t, hook.AllEntries())
}

func TestHandleExportFinished_NoSVGRecords(t *testing.T) {
	r := &fakeRunner{}
	c := &fakeChime{}
	m := &Manager{runner: r, chime: c}

	m.HandleExportFinished(batchOf(
		exporter.Record{Path: "/out/a/x.png", Format: "png"},
	))

	assert.Empty(t, r.calls)
	assert.Empty(t, c.played)
}

func TestHandleExportFinished_OneCuePerBatch(t *testing.T) {
	r := &fakeRunner{fail: map[string]bool{"/out/b": true, "/out/c": true}}
	c := &fakeChime{}
	m := &Manager{runner: r, chime: c}

	m.HandleExportFinished(batchOf(
		exporter.Record{Path: "/out/a/x.svg", Format: "svg"},
		exporter.Record{Path: "/out/b/y.svg", Format: "svg"},
		exporter.Record{Path: "/out/c/z.svg", Format: "svg"},
	))

	require.Len(t, c.played, 1)
	assert.False(t, c.played[0])
}

func TestSVGDirs(t *testing.T) {
	dirs := svgDirs(batchOf(
		exporter.Record{Path: "/out/b/a.svg", Format: "svg"},
		exporter.Record{Path: "/out/a/b.svg", Format: "svg"},
		exporter.Record{Path: "/out/b/c.svg", Format: "svg"},
		exporter.Record{Path: "/out/c/d.jpeg", Format: "jpeg"},
		// format comparison is exact, no case folding
		exporter.Record{Path: "/out/d/e.svg", Format: "SVG"},
	))
	assert.Equal(t, []string{"/out/b", "/out/a"}, dirs)
}

func TestUniqueStrings(t *testing.T) {
	in := []string{"/out/a", "/out/b", "/out/a", "/out/c", "/out/b"}
	out := uniqueStrings(in)
	assert.Equal(t, []string{"/out/a", "/out/b", "/out/c"}, out)
	// idempotent: deduplicating a deduplicated sequence is a no-op
	assert.Equal(t, out, uniqueStrings(out))
	assert.Nil(t, uniqueStrings(nil))
}
