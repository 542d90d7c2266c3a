package optimize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeArgs(t *testing.T) {
	args := optimizeArgs("/out/icons")
	assert.Equal(t, []string{
		"--folder=/out/icons",
		"--pretty",
		"--disable=convertShapeToPath",
		"--enable=removeTitle,removeDesc,removeDoctype,removeEmptyAttrs,removeUnknownsAndDefaults,removeEditorsNSData",
	}, args)
}

func TestOptimizeArgs_NoShellQuoting(t *testing.T) {
	// the directory stays a single discrete token, no quoting or escaping
	dir := `/out/my icons'; rm -rf $HOME`
	args := optimizeArgs(dir)
	require.NotEmpty(t, args)
	assert.Equal(t, "--folder="+dir, args[0])
	for _, a := range args[1:] {
		assert.False(t, strings.Contains(a, dir))
	}
}

func TestSVGORunner_FailedLaunch(t *testing.T) {
	r := &SVGORunner{Binary: "/nonexistent/svgo"}
	assert.Error(t, r.Optimize(t.TempDir()))
}
