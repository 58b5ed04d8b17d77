package report

import (
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// ManifestRow is one line of an input manifest CSV pairing prediction and
// truth image paths.
type ManifestRow struct {
	Pred  string `csv:"pred"`
	Truth string `csv:"truth"`
}

// ReadManifest parses a manifest CSV with (at least) pred and truth columns.
func ReadManifest(path string) ([]ManifestRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var rows []ManifestRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// WriteCSV serializes a slice of row structs (e.g. []*Pair) to w.
func WriteCSV(w io.Writer, rows interface{}) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return pfx.Err(err)
	}
	return nil
}
