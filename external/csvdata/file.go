// Package csvdata reads header-keyed rows out of CSV files on disk. It is
// the I/O collaborator the source adapters depend on; row semantics live in
// the adapters, only file mechanics live here.
package csvdata

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/brfutdata/matchgraph/internal/datasource"
)

type File struct {
	name string
	path string
}

// NewFile wires one CSV file as a row source. The name identifies the
// source in run summaries; when empty it derives from the file name.
func NewFile(name, path string) *File {
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &File{name: name, path: path}
}

func (f *File) Name() string { return f.name }

// Rows reads the whole file. Each call re-reads from disk so a pipeline can
// be re-run without rebuilding its sources. Any failure here is fatal for
// the source; there is no such thing as a partially read file.
func (f *File) Rows(ctx context.Context) ([]datasource.Row, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s", f.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	// Cup rounds and venue names vary the column count in older exports.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, crerr.Wrapf(err, "read header of %s", f.path)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []datasource.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, crerr.Wrap(err, "csv read cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read %s", f.path)
		}

		row := make(datasource.Row, len(header))
		for i, field := range header {
			if i < len(record) {
				row[field] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
