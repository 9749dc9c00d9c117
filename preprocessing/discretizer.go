package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/catree/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// QuantileDiscretizer は数値特徴量を分位点でビンに分割する
// 決定木はカテゴリ値しか扱わないため、連続値の列はこの変換を通してから学習に使う
type QuantileDiscretizer struct {
	// Bins は列ごとの目標ビン数
	Bins int

	// Edges は各特徴量のビン境界（昇順、重複なし）
	// 値 v のビン番号は v 以下の境界の数になる
	Edges [][]float64

	// NFeatures は特徴量の数
	NFeatures int
}

// NewQuantileDiscretizer は新しいQuantileDiscretizerを作成する
//
// パラメータ:
//   - bins: ビン数 (2以上)
//
// 使用例:
//
//	disc := preprocessing.NewQuantileDiscretizer(4)
//	err := disc.Fit(X)
//	XBinned, err := disc.Transform(X)
func NewQuantileDiscretizer(bins int) *QuantileDiscretizer {
	return &QuantileDiscretizer{Bins: bins}
}

// IsFitted は学習済みかどうかを返す
func (d *QuantileDiscretizer) IsFitted() bool {
	return d.NFeatures > 0 && len(d.Edges) == d.NFeatures
}

// Fit は訓練データの各列から分位点の境界を計算する
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: ビン数が不正、データが空、NaN/Infを含む場合
func (d *QuantileDiscretizer) Fit(X mat.Matrix) error {
	if d.Bins < 2 {
		return errors.NewValidationError("bins", "must be at least 2", d.Bins)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("QuantileDiscretizer.Fit", "empty data", errors.ErrEmptyData)
	}

	edges := make([][]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if err := errors.CheckNumericalStability("QuantileDiscretizer.Fit", col); err != nil {
			return err
		}
		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)

		// 内側の分位点だけを境界にする（最小値・最大値は含めない）
		var e []float64
		for k := 1; k < d.Bins; k++ {
			q := stat.Quantile(float64(k)/float64(d.Bins), stat.Empirical, sorted, nil)
			if q <= sorted[0] {
				continue
			}
			if len(e) > 0 && q == e[len(e)-1] {
				continue
			}
			e = append(e, q)
		}
		edges[j] = e
	}

	d.Edges = edges
	d.NFeatures = c
	return nil
}

// Transform は各値をビン番号 (0, 1, ...) に置き換える
func (d *QuantileDiscretizer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("QuantileDiscretizer", "Transform")
	}
	r, c := X.Dims()
	if c != d.NFeatures {
		return nil, errors.NewDimensionError("QuantileDiscretizer.Transform", d.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				return nil, errors.NewNumericalInstabilityError("QuantileDiscretizer.Transform", []float64{v}, i)
			}
			result.Set(i, j, float64(d.Bin(j, v)))
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (d *QuantileDiscretizer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := d.Fit(X); err != nil {
		return nil, err
	}
	return d.Transform(X)
}

// Bin は特徴量 j の値 v のビン番号を返す
func (d *QuantileDiscretizer) Bin(j int, v float64) int {
	edges := d.Edges[j]
	return sort.Search(len(edges), func(k int) bool { return edges[k] > v })
}

// BinLabel はビン番号を人が読める区間表記にする
//
//	"<5.5", "[5.5,7)", ">=7"
func (d *QuantileDiscretizer) BinLabel(j, bin int) string {
	edges := d.Edges[j]
	switch {
	case len(edges) == 0:
		return "all"
	case bin == 0:
		return fmt.Sprintf("<%g", edges[0])
	case bin >= len(edges):
		return fmt.Sprintf(">=%g", edges[len(edges)-1])
	default:
		return fmt.Sprintf("[%g,%g)", edges[bin-1], edges[bin])
	}
}

// GetParams は変換器のパラメータを取得する
func (d *QuantileDiscretizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"bins": d.Bins,
	}
}

// String は変換器の文字列表現を返す
func (d *QuantileDiscretizer) String() string {
	if !d.IsFitted() {
		return fmt.Sprintf("QuantileDiscretizer(bins=%d)", d.Bins)
	}
	return fmt.Sprintf("QuantileDiscretizer(bins=%d, n_features=%d)", d.Bins, d.NFeatures)
}
