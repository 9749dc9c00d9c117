package dataset

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// Metadata describes how a raw Table becomes training data.
//
//	columns: [preg, plas, pres, skin, insu, mass, pedi, age, class]
//	label: class
//	positive: tested_positive
//	attributes: [plas, insu, mass, pedi, age]
//	discretize:
//	  plas: 4
//	names:
//	  plas: Plasma Glucose Concentration
//	table: samples
type Metadata struct {
	// Columns is the header of headerless CSV input.
	Columns []string `yaml:"columns"`
	// Label is the column holding the class.
	Label string `yaml:"label"`
	// Positive is the label value mapped to "yes"; every other value is
	// "no". When empty the label column must already hold yes/no.
	Positive string `yaml:"positive"`
	// Attributes selects and orders the columns used for training. Empty
	// means every column but the label.
	Attributes []string `yaml:"attributes"`
	// Discretize maps numeric columns to their quantile bin count.
	Discretize map[string]int `yaml:"discretize"`
	// Names maps columns to display names used in traces and charts.
	Names map[string]string `yaml:"names"`
	// Table is the SQLite table to read, DefaultTable when empty.
	Table string `yaml:"table"`
}

// ParseMetadata parses a YAML metadata document.
func ParseMetadata(data []byte) (*Metadata, error) {
	md := &Metadata{}
	if err := yaml.UnmarshalStrict(data, md); err != nil {
		return nil, errors.Wrap(err, "parsing metadata yml")
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return md, nil
}

// LoadMetadata reads and parses the metadata file at path.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading metadata file %s", path)
	}
	md, err := ParseMetadata(data)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata file %s", path)
	}
	return md, nil
}

// Validate checks the fields that do not depend on the data.
func (md *Metadata) Validate() error {
	if md.Label == "" {
		return errors.NewValidationError("label", "is required", md.Label)
	}
	for _, a := range md.Attributes {
		if a == md.Label {
			return errors.NewValidationError("attributes", "must not include the label column", a)
		}
	}
	for col, bins := range md.Discretize {
		if bins < 2 {
			return errors.NewValidationError("discretize", fmt.Sprintf("column %q needs at least 2 bins", col), bins)
		}
	}
	return nil
}

// DisplayName returns the configured display name of column or the column itself.
func (md *Metadata) DisplayName(column string) string {
	if n, ok := md.Names[column]; ok && n != "" {
		return n
	}
	return column
}
