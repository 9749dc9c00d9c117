package tree

import (
	"io"

	"github.com/YuminosukeSato/catree/core/model"
	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/pkg/log"
)

// snapshot is the gob representation of a fitted tree. Partitions are not
// stored; a loaded tree predicts and traces but Node.Partition returns nil.
// When V is an interface type its dynamic types must be registered with
// gob.Register.
type snapshot[V comparable] struct {
	Nodes          []*Node[V]
	State          model.ModelState
	UnseenPolicy   UnseenPolicy
	AttributeNames []string
	NAttributes    int
}

// Save writes the fitted tree to w in gob format.
func (t *DecisionTreeClassifier[V]) Save(w io.Writer) error {
	if err := t.state.RequireFitted("Save"); err != nil {
		return err
	}
	snap := snapshot[V]{
		Nodes:          t.nodes,
		State:          t.state.GetState(),
		UnseenPolicy:   t.cfg.unseenPolicy,
		AttributeNames: t.cfg.attributeNames,
		NAttributes:    t.nAttributes,
	}
	if err := model.SaveModelToWriter(&snap, w); err != nil {
		return err
	}
	t.logger.Debug("Model saved",
		log.OperationKey, log.OperationSave,
		log.TreeNodesKey, len(t.nodes),
	)
	return nil
}

// Load replaces the classifier's tree and configuration with the one read
// from r. On error the classifier is left unchanged.
func (t *DecisionTreeClassifier[V]) Load(r io.Reader) error {
	var snap snapshot[V]
	if err := model.LoadModelFromReader(&snap, r); err != nil {
		return err
	}
	if err := validateSnapshot(&snap); err != nil {
		return errors.NewModelError("LoadModel", "invalid tree", err)
	}

	for _, n := range snap.Nodes {
		n.reindex()
	}
	t.nodes = snap.Nodes
	t.nAttributes = snap.NAttributes
	t.cfg.unseenPolicy = snap.UnseenPolicy
	t.cfg.attributeNames = snap.AttributeNames
	t.state.SetState(snap.State)

	t.logger.Debug("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.TreeNodesKey, len(t.nodes),
		log.TreeDepthKey, t.GetDepth(),
	)
	return nil
}

// validateSnapshot rejects trees whose indices would make Predict or
// PrintTrace panic.
func validateSnapshot[V comparable](snap *snapshot[V]) error {
	if !snap.State.Fitted || len(snap.Nodes) == 0 {
		return errors.New("snapshot holds no fitted tree")
	}
	if snap.NAttributes <= 0 {
		return errors.Newf("invalid attribute count %d", snap.NAttributes)
	}
	for i, n := range snap.Nodes {
		if n == nil {
			return errors.Newf("node %d is missing", i)
		}
		if (i == 0) != (n.Parent == NoParent) || n.Parent >= i {
			return errors.Newf("node %d has invalid parent %d", i, n.Parent)
		}
		if n.IsLeaf() {
			if _, ok := ParseLabel(string(n.Prediction)); !ok || len(n.Children) > 0 {
				return errors.Newf("leaf %d is malformed", i)
			}
			continue
		}
		if n.Rule < 0 || n.Rule >= snap.NAttributes || len(n.Children) == 0 {
			return errors.Newf("internal node %d has rule %d and %d children", i, n.Rule, len(n.Children))
		}
		for _, e := range n.Children {
			if e.Node <= i || e.Node >= len(snap.Nodes) || snap.Nodes[e.Node].Parent != i {
				return errors.Newf("node %d has invalid child %d", i, e.Node)
			}
		}
	}
	return nil
}
