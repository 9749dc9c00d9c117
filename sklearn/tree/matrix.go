package tree

import (
	"fmt"

	"github.com/YuminosukeSato/catree/core/model"
	"github.com/YuminosukeSato/catree/metrics"
	"github.com/YuminosukeSato/catree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MatrixClassifier adapts the tree to gonum matrices. Every column of X is
// treated as categorical: values are compared exactly, so X should hold
// category codes or the output of preprocessing.QuantileDiscretizer. y is a
// single column with 1 for yes and 0 for no.
type MatrixClassifier struct {
	*DecisionTreeClassifier[float64]
}

var _ model.Classifier = (*MatrixClassifier)(nil)

// NewMatrixClassifier creates an unfitted matrix classifier.
func NewMatrixClassifier(opts ...Option) *MatrixClassifier {
	return &MatrixClassifier{DecisionTreeClassifier: NewDecisionTreeClassifier[float64](opts...)}
}

// Fit builds the tree from X (n_samples × n_attributes) and y (n_samples × 1).
func (m *MatrixClassifier) Fit(X, y mat.Matrix) error {
	rows, err := matrixRows(X)
	if err != nil {
		return err
	}
	labels, err := matrixLabels(y, len(rows))
	if err != nil {
		return err
	}
	return m.DecisionTreeClassifier.Fit(rows, labels)
}

// Predict returns an n_samples × 1 matrix of 1 (yes) and 0 (no).
func (m *MatrixClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := m.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	rows, err := matrixRows(X)
	if err != nil {
		return nil, err
	}
	preds, err := m.PredictAll(rows)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(preds), 1, nil)
	for i, p := range preds {
		out.Set(i, 0, labelValue(p))
	}
	return out, nil
}

// Score returns the accuracy of Predict(X) against y.
func (m *MatrixClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	r, c := y.Dims()
	if c != 1 {
		return 0, errors.NewDimensionError("Score", 1, c, 1)
	}
	yTrue := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
	}
	return metrics.Accuracy(yTrue, mat.VecDenseCopyOf(pred.(*mat.Dense).ColView(0)))
}

func matrixRows(X mat.Matrix) ([][]float64, error) {
	if X == nil {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	r, c := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			rows[i][j] = X.At(i, j)
		}
	}
	return rows, nil
}

func matrixLabels(y mat.Matrix, n int) ([]string, error) {
	if y == nil {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("Fit", 1, c, 1)
	}
	if r != n {
		return nil, errors.NewDimensionError("Fit", n, r, 0)
	}
	labels := make([]string, r)
	for i := 0; i < r; i++ {
		switch y.At(i, 0) {
		case 1:
			labels[i] = string(Yes)
		case 0:
			labels[i] = string(No)
		default:
			return nil, errors.NewMalformedInputError("MatrixClassifier.Fit", i,
				fmt.Sprintf("target %v is not 0 or 1", y.At(i, 0)))
		}
	}
	return labels, nil
}
