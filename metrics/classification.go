package metrics

import (
	"fmt"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// validatePair は2つのベクトルが空でなく同じ長さであることを確認する
func validatePair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// Accuracy は正解率（予測が一致したサンプルの割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validatePair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// ConfusionMatrix は二値分類（1 = "yes", 0 = "no"）の混同行列
type ConfusionMatrix struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
}

// NewConfusionMatrix は二値ベクトルから混同行列を作成する。
// 0/1 以外の値が含まれる場合はエラーを返す。
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	n, err := validatePair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return cm, err
	}

	for i := 0; i < n; i++ {
		t, p := yTrue.AtVec(i), yPred.AtVec(i)
		if (t != 0 && t != 1) || (p != 0 && p != 1) {
			return ConfusionMatrix{}, errors.NewValueError("ConfusionMatrix",
				fmt.Sprintf("non-binary value at index %d: true=%v pred=%v", i, t, p))
		}
		switch {
		case t == 1 && p == 1:
			cm.TruePositive++
		case t == 0 && p == 1:
			cm.FalsePositive++
		case t == 0 && p == 0:
			cm.TrueNegative++
		default:
			cm.FalseNegative++
		}
	}
	return cm, nil
}

// Total はサンプル数を返す
func (c ConfusionMatrix) Total() int {
	return c.TruePositive + c.FalsePositive + c.TrueNegative + c.FalseNegative
}

// Accuracy は混同行列から正解率を計算する
func (c ConfusionMatrix) Accuracy() float64 {
	return errors.SafeDivide(float64(c.TruePositive+c.TrueNegative), float64(c.Total()))
}

// Precision は適合率を計算する。"yes" の予測が一つもない場合は警告を出して0を返す。
func (c ConfusionMatrix) Precision() float64 {
	predicted := c.TruePositive + c.FalsePositive
	if predicted == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted yes samples", 0))
		return 0
	}
	return float64(c.TruePositive) / float64(predicted)
}

// Recall は再現率を計算する。正解に "yes" が一つもない場合は警告を出して0を返す。
func (c ConfusionMatrix) Recall() float64 {
	actual := c.TruePositive + c.FalseNegative
	if actual == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true yes samples", 0))
		return 0
	}
	return float64(c.TruePositive) / float64(actual)
}

// String は CLI 表示用の2x2表を返す
func (c ConfusionMatrix) String() string {
	return fmt.Sprintf("            pred yes  pred no\ntrue yes  %9d %8d\ntrue no   %9d %8d",
		c.TruePositive, c.FalseNegative, c.FalsePositive, c.TrueNegative)
}
