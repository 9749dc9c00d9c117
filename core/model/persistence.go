package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// SaveModelToWriter はモデルをgob形式で w に書き出す
//
// パラメータ:
//   - model: 保存する値（エクスポートされたフィールドのみ保存される）
//   - w: 保存先のWriter
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.NewModelError("SaveModel", "failed to encode model", err)
	}
	return nil
}

// LoadModelFromReader は r からgob形式のモデルを読み込む
//
// パラメータ:
//   - model: 読み込み先（ポインタ）
//   - r: 読み込み元のReader
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.NewModelError("LoadModel", "failed to decode model", err)
	}
	return nil
}

// SaveModel はモデルをファイルに保存する
//
// 使用例:
//
//	clf := tree.NewDecisionTreeClassifier[string]()
//	// ... 学習 ...
//	err := model.SaveModel(clf, "model.gob")
func SaveModel(model Persistable, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewModelError("SaveModel", "failed to create file", err)
	}
	if err := model.Save(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadModel はファイルからモデルを読み込む
func LoadModel(model Persistable, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.NewModelError("LoadModel", "failed to open file", err)
	}
	defer file.Close()
	return model.Load(file)
}
