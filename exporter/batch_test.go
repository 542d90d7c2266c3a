package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "svg", formatOf("/out/a/logo.svg"))
	assert.Equal(t, "svg", formatOf("/out/a/LOGO.SVG"))
	assert.Equal(t, "png", formatOf("/out/a/logo@2x.png"))
	assert.Equal(t, "", formatOf("/out/a/Makefile"))
}

func TestBatchCollection(t *testing.T) {
	b := &Batch{Records: []Record{
		{Path: "/out/a/x.svg", Format: "svg"},
		{Path: "/out/b/y.png", Format: "png"},
	}}
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "/out/b/y.png", b.At(1).Path)
}
