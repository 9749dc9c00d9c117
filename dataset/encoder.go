package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/preprocessing"
)

// Encoded is a Table turned into tree input.
type Encoded struct {
	// Attributes names the columns of Rows.
	Attributes []string
	Rows       [][]string
	// Labels holds "yes"/"no" per row, nil when the table has no label column.
	Labels []string
}

// Encoder selects attribute columns, discretizes numeric ones and maps the
// label column to yes/no. Its exported state is gob encodable so the bin
// edges learned on training data can be reused at prediction time.
type Encoder struct {
	Metadata     Metadata
	Attributes   []string
	Discretizers map[string]*preprocessing.QuantileDiscretizer
}

// NewEncoder creates an unfitted encoder for md.
func NewEncoder(md *Metadata) *Encoder {
	return &Encoder{Metadata: *md}
}

// Fit resolves the attribute columns of t and learns the bin edges of every
// discretized attribute.
func (e *Encoder) Fit(t *Table) error {
	md := &e.Metadata
	if _, ok := t.Column(md.Label); !ok {
		return errors.NewValidationError("label", "column not found in data", md.Label)
	}

	attrs := md.Attributes
	if len(attrs) == 0 {
		for _, c := range t.Columns {
			if c != md.Label {
				attrs = append(attrs, c)
			}
		}
	}
	sel, err := preprocessing.NewColumnSelector(t.Columns, attrs)
	if err != nil {
		return err
	}

	discretizers := make(map[string]*preprocessing.QuantileDiscretizer)
	for col, bins := range md.Discretize {
		j, ok := t.Column(col)
		if !ok {
			return errors.NewValidationError("discretize", "column not found in data", col)
		}
		if !contains(sel.Names, col) {
			continue
		}
		X, err := numericColumn(t, j)
		if err != nil {
			return err
		}
		d := preprocessing.NewQuantileDiscretizer(bins)
		if err := d.Fit(X); err != nil {
			return errors.Wrapf(err, "discretizing %s", col)
		}
		discretizers[col] = d
	}

	e.Attributes = sel.Names
	e.Discretizers = discretizers
	return nil
}

// Encode converts t using the state learned by Fit. t may have a different
// column order than the training table and may lack the label column.
func (e *Encoder) Encode(t *Table) (*Encoded, error) {
	if len(e.Attributes) == 0 {
		return nil, errors.NewNotFittedError("Encoder", "Encode")
	}
	sel, err := preprocessing.NewColumnSelector(t.Columns, e.Attributes)
	if err != nil {
		return nil, err
	}
	rows, err := preprocessing.SelectColumns(sel, t.Rows)
	if err != nil {
		return nil, err
	}

	for k, col := range e.Attributes {
		d, ok := e.Discretizers[col]
		if !ok {
			continue
		}
		X, err := numericColumn(t, sel.Indices[k])
		if err != nil {
			return nil, err
		}
		bins, err := d.Transform(X)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i][k] = d.BinLabel(0, int(bins.At(i, 0)))
		}
	}

	enc := &Encoded{Attributes: append([]string(nil), e.Attributes...), Rows: rows}
	if j, ok := t.Column(e.Metadata.Label); ok {
		enc.Labels, err = e.labels(t, j)
		if err != nil {
			return nil, err
		}
	}
	return enc, nil
}

// FitEncode fits the encoder on t and encodes it.
func (e *Encoder) FitEncode(t *Table) (*Encoded, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Encode(t)
}

// DisplayNames returns the display name of every attribute.
func (e *Encoder) DisplayNames() []string {
	names := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		names[i] = e.Metadata.DisplayName(a)
	}
	return names
}

func (e *Encoder) labels(t *Table, j int) ([]string, error) {
	positive := e.Metadata.Positive
	labels := make([]string, len(t.Rows))
	warned := make(map[string]bool)
	for i, row := range t.Rows {
		raw := row[j]
		if positive != "" {
			if raw == positive {
				labels[i] = "yes"
			} else {
				labels[i] = "no"
			}
			continue
		}

		norm := strings.ToLower(strings.TrimSpace(raw))
		if norm != "yes" && norm != "no" {
			return nil, errors.NewMalformedInputError("Encoder.Encode", i,
				fmt.Sprintf("label %q is not yes or no and no positive value is configured", raw))
		}
		if norm != raw && !warned[raw] {
			warned[raw] = true
			errors.Warn(errors.NewDataConversionWarning(raw, norm, "label normalized"))
		}
		labels[i] = norm
	}
	return labels, nil
}

func numericColumn(t *Table, j int) (*mat.Dense, error) {
	if len(t.Rows) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if j >= len(row) {
			return nil, errors.NewMalformedInputError("Encoder", i, "row is too short")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
		if err != nil {
			return nil, errors.NewMalformedInputError("Encoder", i,
				fmt.Sprintf("column %q: %q is not numeric", t.Columns[j], row[j]))
		}
		values[i] = v
	}
	return mat.NewDense(len(values), 1, values), nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
