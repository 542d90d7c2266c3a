package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgpress/svgpress/config"
)

const testTOML = `root_path = "/srv/press"

[exporter]
roots = ["/out/a", "/out/b"]
settle_ms = 250

[optimize]
svgo_path = "/opt/svgo/bin/svgo"
`

func TestWithValuesFromTOMLFile(t *testing.T) {
	type Exporter struct {
		Roots    []string `toml:"roots"`
		SettleMs int      `toml:"settle_ms"`
	}
	type Optimize struct {
		SVGOPath string `toml:"svgo_path"`
	}
	type Root struct {
		RootPath string `toml:"root_path"`
	}

	cf := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cf, []byte(testTOML), 0644))

	co := &Root{}
	ex := &Exporter{}
	op := &Optimize{}
	c, err := config.Wrap(co,
		config.WithGenericSection("exporter", config.WithInitValue(ex)),
		config.WithGenericSection("optimize", config.WithInitValue(op)),
		config.WithValuesFromTOMLFile(cf))
	require.NoError(t, err)

	// values land on the wrapped structs
	assert.Equal(t, "/srv/press", co.RootPath)
	assert.Equal(t, []string{"/out/a", "/out/b"}, ex.Roots)
	assert.Equal(t, 250, ex.SettleMs)
	assert.Equal(t, "/opt/svgo/bin/svgo", op.SVGOPath)

	// and are readable through the generic interface
	sec, err := c.Section("exporter")
	require.NoError(t, err)
	ms, ok := sec.Int("settle_ms")
	require.True(t, ok)
	assert.Equal(t, 250, ms)
}

func TestWithValuesFromTOMLFile_MissingFile(t *testing.T) {
	type Root struct {
		RootPath string `toml:"root_path"`
	}
	co := &Root{RootPath: "/srv/press"}
	_, err := config.Wrap(co,
		config.WithValuesFromTOMLFile(filepath.Join(t.TempDir(), "nope.toml")))
	require.NoError(t, err)
	assert.Equal(t, "/srv/press", co.RootPath)
}

func TestWithGenericSection_Duplicate(t *testing.T) {
	_, err := config.New(
		config.WithGenericSection("exporter"),
		config.WithGenericSection("exporter"))
	assert.Error(t, err)
}
