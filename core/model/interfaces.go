// Package model は推定器が共有するインターフェースと状態管理を提供します。
package model

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score は分類器の場合は正解率を返す
	Score(X, y mat.Matrix) (float64, error)
}

// Classifier は行列入力の分類器
type Classifier interface {
	Fitter
	Predictor
	Scorer
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter はハイパーパラメータを変更できるモデルのインターフェース
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}

// Persistable は保存・読み込み可能なモデルのインターフェース
type Persistable interface {
	Save(w io.Writer) error
	Load(r io.Reader) error
}
