package dataset

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/pkg/log"
)

const pimaCSV = `preg,plas,pres,class
6,148,72,tested_positive
1,85,66,tested_negative
8,183,64,tested_positive
1,89,66,tested_negative
0,137,40,tested_positive
5,116,74,tested_negative
3,78,50,tested_positive
10,115,0,tested_negative
`

const pimaMetadata = `
label: class
positive: tested_positive
attributes: [plas, preg]
discretize:
  plas: 2
names:
  plas: Plasma Glucose Concentration
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(pimaCSV), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"preg", "plas", "pres", "class"}) {
		t.Errorf("Columns = %v", tbl.Columns)
	}
	if len(tbl.Rows) != 8 || tbl.Rows[2][1] != "183" {
		t.Errorf("Rows = %v", tbl.Rows)
	}
	if j, ok := tbl.Column("class"); !ok || j != 3 {
		t.Errorf("Column(class) = %d, %v", j, ok)
	}
}

func TestReadCSV_Headerless(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("sunny,no\nrain,yes\n"), []string{"outlook", "play"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 2 || tbl.Columns[1] != "play" {
		t.Errorf("table = %+v", tbl)
	}

	_, err = ReadCSV(strings.NewReader("sunny,no\nrain\n"), []string{"outlook", "play"})
	var mErr *errors.MalformedInputError
	if !errors.As(err, &mErr) || mErr.Row != 1 {
		t.Errorf("ragged CSV error = %v", err)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	for _, in := range []string{"", "a,b\n"} {
		_, err := ReadCSV(strings.NewReader(in), nil)
		if !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("ReadCSV(%q) error = %v, want ErrEmptyData", in, err)
		}
	}
}

func TestReadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pima.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE samples (preg INTEGER, plas REAL, class TEXT)`,
		`INSERT INTO samples VALUES (6, 148, 'tested_positive'), (1, 85.5, 'tested_negative'), (NULL, 90, 'tested_negative')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	tbl, err := ReadSQLiteTable(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"preg", "plas", "class"}) {
		t.Errorf("Columns = %v", tbl.Columns)
	}
	want := [][]string{
		{"6", "148", "tested_positive"},
		{"1", "85.5", "tested_negative"},
		{"", "90", "tested_negative"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %q, want %q", tbl.Rows, want)
	}

	if _, err := ReadSQLiteTable(context.Background(), path, `x"; DROP TABLE samples; --`); err == nil {
		t.Error("expected error for a quoted table name")
	}
	if _, err := ReadSQLite(context.Background(), path, "SELECT * FROM samples WHERE preg > 100"); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("empty result error = %v", err)
	}

	md := &Metadata{Label: "class"}
	tbl, err = Read(context.Background(), path, md)
	if err != nil || len(tbl.Rows) != 3 {
		t.Errorf("Read(sqlite) = %v, %v", tbl, err)
	}
}

func TestMetadata(t *testing.T) {
	md, err := ParseMetadata([]byte(pimaMetadata))
	if err != nil {
		t.Fatal(err)
	}
	if md.Label != "class" || md.Positive != "tested_positive" || md.Discretize["plas"] != 2 {
		t.Errorf("metadata = %+v", md)
	}
	if md.DisplayName("plas") != "Plasma Glucose Concentration" || md.DisplayName("preg") != "preg" {
		t.Error("DisplayName() mismatch")
	}

	path := filepath.Join(t.TempDir(), "meta.yml")
	if err := os.WriteFile(path, []byte(pimaMetadata), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMetadata(path); err != nil {
		t.Errorf("LoadMetadata() error = %v", err)
	}
	if _, err := LoadMetadata(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestMetadata_Invalid(t *testing.T) {
	docs := []string{
		"positive: yes\n",
		"label: class\nattributes: [class]\n",
		"label: class\ndiscretize:\n  plas: 1\n",
		"label: class\nunknown_key: 1\n",
		"label: [",
	}
	for _, doc := range docs {
		if _, err := ParseMetadata([]byte(doc)); err == nil {
			t.Errorf("ParseMetadata(%q) should fail", doc)
		}
	}
}

func TestEncoder(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(pimaCSV), nil)
	if err != nil {
		t.Fatal(err)
	}
	md, err := ParseMetadata([]byte(pimaMetadata))
	if err != nil {
		t.Fatal(err)
	}

	enc := NewEncoder(md)
	encoded, err := enc.FitEncode(tbl)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(encoded.Attributes, []string{"plas", "preg"}) {
		t.Errorf("Attributes = %v", encoded.Attributes)
	}
	// The median of plas is 115, so 2 bins split at 115.
	wantRows := [][]string{
		{">=115", "6"},
		{"<115", "1"},
		{">=115", "8"},
		{"<115", "1"},
		{">=115", "0"},
		{">=115", "5"},
		{"<115", "3"},
		{">=115", "10"},
	}
	if !reflect.DeepEqual(encoded.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", encoded.Rows, wantRows)
	}
	wantLabels := []string{"yes", "no", "yes", "no", "yes", "no", "yes", "no"}
	if !reflect.DeepEqual(encoded.Labels, wantLabels) {
		t.Errorf("Labels = %v", encoded.Labels)
	}
	if !reflect.DeepEqual(enc.DisplayNames(), []string{"Plasma Glucose Concentration", "preg"}) {
		t.Errorf("DisplayNames() = %v", enc.DisplayNames())
	}

	// Prediction input: other column order, no label column.
	unlabeled := &Table{Columns: []string{"plas", "preg"}, Rows: [][]string{{"200", "2"}, {"50", "7"}}}
	encoded, err = enc.Encode(unlabeled)
	if err != nil {
		t.Fatal(err)
	}
	if encoded.Labels != nil {
		t.Error("labels should be nil without a label column")
	}
	if !reflect.DeepEqual(encoded.Rows, [][]string{{">=115", "2"}, {"<115", "7"}}) {
		t.Errorf("Rows = %v", encoded.Rows)
	}
}

func TestEncoder_Errors(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "class"}, Rows: [][]string{{"x", "yes"}, {"y", "maybe"}}}

	enc := NewEncoder(&Metadata{Label: "class"})
	if _, err := enc.Encode(tbl); err == nil {
		t.Error("Encode before Fit should fail")
	}
	_, err := enc.FitEncode(tbl)
	var mErr *errors.MalformedInputError
	if !errors.As(err, &mErr) || mErr.Row != 1 {
		t.Errorf("bad label error = %v", err)
	}

	if err := NewEncoder(&Metadata{Label: "target"}).Fit(tbl); err == nil {
		t.Error("missing label column should fail")
	}
	if err := NewEncoder(&Metadata{Label: "class", Discretize: map[string]int{"a": 3}}).Fit(tbl); err == nil {
		t.Error("non-numeric discretized column should fail")
	}
	if err := NewEncoder(&Metadata{Label: "class", Attributes: []string{"b"}}).Fit(tbl); err == nil {
		t.Error("unknown attribute should fail")
	}
}

func TestEncoder_LabelNormalization(t *testing.T) {
	testLogger, _ := log.NewTestLogger(log.LevelDebug)
	prev := log.SetLogger(testLogger)
	defer log.SetLogger(prev)

	tbl := &Table{
		Columns: []string{"a", "class"},
		Rows:    [][]string{{"x", "Yes"}, {"y", "no"}, {"x", "Yes"}, {"y", " NO"}},
	}
	encoded, err := NewEncoder(&Metadata{Label: "class"}).FitEncode(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(encoded.Labels, []string{"yes", "no", "yes", "no"}) {
		t.Errorf("Labels = %v", encoded.Labels)
	}

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	warnings := 0
	for _, e := range entries {
		if e[log.ErrorTypeKey] == "*errors.DataConversionWarning" {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("expected one warning per distinct raw label, got %d", warnings)
	}
}
