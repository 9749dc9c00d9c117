// Package dataset loads categorical training data for the decision tree from
// CSV files or SQLite databases and encodes it according to a YAML metadata
// file: which column holds the label, which value counts as "yes", which
// attributes are used and which numeric columns are discretized first.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/pkg/log"
)

// Table is a raw dataset: a header and rows of string cells of equal width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Column returns the position of the named column.
func (t *Table) Column(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// ReadCSV reads a CSV stream. If columns is empty the first record is the
// header; otherwise every record is data and columns names them.
func ReadCSV(r io.Reader, columns []string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	t := &Table{Columns: append([]string(nil), columns...)}
	if len(t.Columns) == 0 {
		header, err := cr.Read()
		if err == io.EOF {
			return nil, errors.NewModelError("ReadCSV", "missing header", errors.ErrEmptyData)
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading header")
		}
		t.Columns = header
	} else {
		cr.FieldsPerRecord = len(t.Columns)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pErr *csv.ParseError
			if errors.As(err, &pErr) {
				return nil, errors.NewMalformedInputError("ReadCSV", len(t.Rows), pErr.Err.Error())
			}
			return nil, errors.Wrap(err, "reading body")
		}
		t.Rows = append(t.Rows, record)
	}
	if len(t.Rows) == 0 {
		return nil, errors.NewModelError("ReadCSV", "no data rows", errors.ErrEmptyData)
	}
	return t, nil
}

// ReadCSVFile reads the CSV file at path, or standard input when path is "-".
func ReadCSVFile(path string, columns []string) (*Table, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}
	t, err := ReadCSV(r, columns)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return t, nil
}

// IsSQLite reports whether path names an SQLite database by its extension.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Read loads path as an SQLite database (reading md.Table) or as a CSV file
// (using md.Columns as header when set).
func Read(ctx context.Context, path string, md *Metadata) (*Table, error) {
	var (
		t   *Table
		err error
	)
	if IsSQLite(path) {
		t, err = ReadSQLiteTable(ctx, path, md.Table)
	} else {
		t, err = ReadCSVFile(path, md.Columns)
	}
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.SourceKey, path,
		log.SamplesKey, len(t.Rows),
		log.AttributesKey, len(t.Columns),
	)
	return t, nil
}
