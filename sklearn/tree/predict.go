package tree

import (
	"context"

	"github.com/YuminosukeSato/catree/metrics"
	"github.com/YuminosukeSato/catree/performance"
	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Predict classifies one sample. Attribute values that never reached a node
// during Fit are resolved according to the configured UnseenPolicy.
func (t *DecisionTreeClassifier[V]) Predict(sample []V) (label Label, err error) {
	defer errors.Recover(&err, "DecisionTreeClassifier.Predict")

	if err := t.state.RequireFitted("Predict"); err != nil {
		return "", err
	}
	if len(sample) != t.nAttributes {
		return "", errors.NewDimensionError("Predict", t.nAttributes, len(sample), 1)
	}
	return t.predictFrom(0, sample)
}

// PredictAll classifies every sample, stopping at the first error.
func (t *DecisionTreeClassifier[V]) PredictAll(samples [][]V) ([]Label, error) {
	out := make([]Label, len(samples))
	for i, s := range samples {
		l, err := t.Predict(s)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		out[i] = l
	}
	return out, nil
}

// PredictAllContext classifies samples in chunks on up to workers goroutines
// (runtime.NumCPU() when workers <= 0). Results are in input order. The
// first failing sample, in whatever chunk fails first, aborts the batch.
func (t *DecisionTreeClassifier[V]) PredictAllContext(ctx context.Context, samples [][]V, workers int) ([]Label, error) {
	if err := t.state.RequireFitted("PredictAllContext"); err != nil {
		return nil, err
	}
	out := make([]Label, len(samples))
	p := performance.NewChunkedProcessor(performance.DefaultChunkSize, workers)
	err := p.Process(ctx, len(samples), func(start, end int) error {
		for i := start; i < end; i++ {
			l, err := t.Predict(samples[i])
			if err != nil {
				return errors.Wrapf(err, "sample %d", i)
			}
			out[i] = l
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.logger.Debug("Batch predicted",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, len(out),
		log.WorkersKey, p.NumWorkers(),
	)
	return out, nil
}

func (t *DecisionTreeClassifier[V]) predictFrom(idx int, sample []V) (Label, error) {
	node := t.nodes[idx]
	if node.IsLeaf() {
		return node.Prediction, nil
	}

	value := sample[node.Rule]
	if childIdx, ok := node.child(value); ok {
		return t.predictFrom(childIdx, sample)
	}

	if t.cfg.unseenPolicy == UnseenError {
		return "", errors.NewUnseenCategoryError(node.Rule, value, node.Depth)
	}

	// Every child predicts the sample as is; each vote counts with the
	// child's training size.
	vote := 0
	for _, e := range node.Children {
		l, err := t.predictFrom(e.Node, sample)
		if err != nil {
			return "", err
		}
		if l == Yes {
			vote += t.nodes[e.Node].N
		} else {
			vote -= t.nodes[e.Node].N
		}
	}

	result := No
	if vote >= 0 {
		result = Yes
	}
	t.logger.Debug("Unseen category resolved by vote",
		log.OperationKey, log.OperationPredict,
		log.AttributeKey, node.Rule,
		log.CategoryKey, value,
		log.TreeDepthKey, node.Depth,
		log.UnseenKey, t.cfg.unseenPolicy.String(),
		log.PredictionKey, string(result),
	)
	return result, nil
}

// Score returns the accuracy of the classifier on samples against
// "yes"/"no" labels.
func (t *DecisionTreeClassifier[V]) Score(samples [][]V, labels []string) (float64, error) {
	if len(samples) != len(labels) {
		return 0, errors.NewDimensionError("Score", len(samples), len(labels), 0)
	}
	if len(samples) == 0 {
		return 0, errors.WithStack(errors.ErrEmptyData)
	}
	preds, err := t.PredictAll(samples)
	if err != nil {
		return 0, err
	}

	yTrue := mat.NewVecDense(len(labels), nil)
	yPred := mat.NewVecDense(len(labels), nil)
	for i, s := range labels {
		l, ok := ParseLabel(s)
		if !ok {
			return 0, errors.NewMalformedInputError("DecisionTreeClassifier.Score", i, "label is not yes or no")
		}
		yTrue.SetVec(i, labelValue(l))
		yPred.SetVec(i, labelValue(preds[i]))
	}

	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	t.logger.Debug("Score computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, len(samples),
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// labelValue encodes Yes as 1 and No as 0.
func labelValue(l Label) float64 {
	if l == Yes {
		return 1
	}
	return 0
}
