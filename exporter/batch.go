package exporter

import (
	"path/filepath"
	"strings"
)

// A Record describes one asset written to disk during an export.
type Record struct {
	// Path is the absolute path of the written file.
	Path string
	// Format is the declared format of the asset, the lower-cased file
	// extension without the leading dot, eg. "svg" or "png".
	Format string
}

// A Batch is the ordered collection of records produced by a single
// export operation.
type Batch struct {
	ID      string
	Records []Record
}

// Len and At expose the records as an indexable, countable collection.
func (b *Batch) Len() int {
	return len(b.Records)
}

func (b *Batch) At(i int) Record {
	return b.Records[i]
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
