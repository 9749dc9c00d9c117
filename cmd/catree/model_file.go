package main

import (
	"bytes"
	"os"

	"github.com/YuminosukeSato/catree/core/model"
	"github.com/YuminosukeSato/catree/dataset"
	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/sklearn/tree"
)

// modelFile bundles a fitted tree with the encoder that produced its input,
// so prediction data is selected and discretized exactly like the training data.
type modelFile struct {
	Tree    []byte
	Encoder *dataset.Encoder
}

func saveModelFile(path string, clf *tree.DecisionTreeClassifier[string], enc *dataset.Encoder) error {
	var buf bytes.Buffer
	if err := clf.Save(&buf); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating model file %s", path)
	}
	if err := model.SaveModelToWriter(&modelFile{Tree: buf.Bytes(), Encoder: enc}, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadModelFile(path string) (*tree.DecisionTreeClassifier[string], *dataset.Encoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening model file %s", path)
	}
	defer f.Close()

	var mf modelFile
	if err := model.LoadModelFromReader(&mf, f); err != nil {
		return nil, nil, errors.Wrapf(err, "reading model file %s", path)
	}
	if mf.Encoder == nil {
		return nil, nil, errors.Newf("model file %s has no encoder", path)
	}
	clf := tree.NewDecisionTreeClassifier[string]()
	if err := clf.Load(bytes.NewReader(mf.Tree)); err != nil {
		return nil, nil, errors.Wrapf(err, "reading tree from %s", path)
	}
	return clf, mf.Encoder, nil
}
