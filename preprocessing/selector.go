package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ColumnSelector は学習に使う特徴量の部分集合を列名で選択する
type ColumnSelector struct {
	// Names は選択された列名（選択順）
	Names []string

	// Indices は元データでの列番号
	Indices []int

	// NFeatures は元データの列数
	NFeatures int
}

// NewColumnSelector は columns の中から selected の列を選ぶセレクタを作成する
// selected が空の場合は全列を選択する
//
// 使用例:
//
//	sel, err := preprocessing.NewColumnSelector(header, []string{"plas", "mass", "age"})
//	rows, err := preprocessing.SelectColumns(sel, table.Rows)
func NewColumnSelector(columns, selected []string) (*ColumnSelector, error) {
	if len(columns) == 0 {
		return nil, errors.NewModelError("NewColumnSelector", "no columns", errors.ErrEmptyData)
	}
	if len(selected) == 0 {
		selected = columns
	}

	position := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := position[c]; dup {
			return nil, errors.NewValidationError("columns", fmt.Sprintf("duplicate column %q", c), columns)
		}
		position[c] = i
	}

	s := &ColumnSelector{NFeatures: len(columns)}
	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		i, ok := position[name]
		if !ok {
			return nil, errors.NewValidationError("attributes", fmt.Sprintf("unknown column %q", name), selected)
		}
		if seen[name] {
			return nil, errors.NewValidationError("attributes", fmt.Sprintf("column %q selected twice", name), selected)
		}
		seen[name] = true
		s.Names = append(s.Names, name)
		s.Indices = append(s.Indices, i)
	}
	return s, nil
}

// Transform は選択された列だけからなる行列を返す
func (s *ColumnSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("ColumnSelector.Transform", s.NFeatures, c, 1)
	}
	result := mat.NewDense(r, len(s.Indices), nil)
	for i := 0; i < r; i++ {
		for k, j := range s.Indices {
			result.Set(i, k, X.At(i, j))
		}
	}
	return result, nil
}

// SelectColumns は各行から選択された列を取り出す
// 列数が合わない行があればその行番号付きでエラーを返す
func SelectColumns[T any](s *ColumnSelector, rows [][]T) ([][]T, error) {
	out := make([][]T, len(rows))
	for i, row := range rows {
		if len(row) != s.NFeatures {
			return nil, errors.NewMalformedInputError("SelectColumns", i,
				fmt.Sprintf("row has %d columns, expected %d", len(row), s.NFeatures))
		}
		selected := make([]T, len(s.Indices))
		for k, j := range s.Indices {
			selected[k] = row[j]
		}
		out[i] = selected
	}
	return out, nil
}
