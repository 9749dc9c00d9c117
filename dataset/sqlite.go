package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// DefaultTable is read when the metadata names no table.
const DefaultTable = "samples"

// ReadSQLite runs query against the SQLite database at path and returns the
// result set as a Table. NULL cells become empty strings.
func ReadSQLite(ctx context.Context, path, query string) (*Table, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", path)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading columns")
	}

	t := &Table{Columns: columns}
	cells := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d", len(t.Rows))
		}
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = c.String
		}
		t.Rows = append(t.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating rows")
	}
	if len(t.Rows) == 0 {
		return nil, errors.NewModelError("ReadSQLite", "no data rows", errors.ErrEmptyData)
	}
	return t, nil
}

// ReadSQLiteTable reads every row of table.
func ReadSQLiteTable(ctx context.Context, path, table string) (*Table, error) {
	if table == "" {
		table = DefaultTable
	}
	if strings.ContainsAny(table, `"`) {
		return nil, errors.NewValidationError("table", `contains invalid character '"'`, table)
	}
	return ReadSQLite(ctx, path, fmt.Sprintf(`SELECT * FROM "%s"`, table))
}
