package tree

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/catree/core/model"
	"github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/YuminosukeSato/catree/pkg/log"
)

const modelName = "DecisionTreeClassifier"

// DecisionTreeClassifier is an ID3 decision tree over categorical attributes
// with yes/no labels. Attribute values are compared with ==; V is typically
// int or string.
//
// Nodes live in an arena addressed by index. The root is node 0, every node
// records its parent index and its children in first-seen value order.
type DecisionTreeClassifier[V comparable] struct {
	state *model.StateManager
	cfg   config

	nodes       []*Node[V]
	nAttributes int

	logger log.Logger
}

var (
	_ model.ParameterGetter = (*DecisionTreeClassifier[int])(nil)
	_ model.ParameterSetter = (*DecisionTreeClassifier[int])(nil)
	_ model.Persistable     = (*DecisionTreeClassifier[int])(nil)
)

// NewDecisionTreeClassifier creates an unfitted classifier.
func NewDecisionTreeClassifier[V comparable](opts ...Option) *DecisionTreeClassifier[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DecisionTreeClassifier[V]{
		state:  model.NewStateManager(modelName),
		cfg:    cfg,
		logger: newLogger(),
	}
}

func newLogger() log.Logger {
	return log.GetLoggerWithName("tree.id3").With(log.ModelNameKey, modelName)
}

// Fit builds the tree from rows and their "yes"/"no" labels. Malformed input
// aborts the build and leaves the classifier unfitted.
func (t *DecisionTreeClassifier[V]) Fit(rows [][]V, labels []string) (err error) {
	defer errors.Recover(&err, "DecisionTreeClassifier.Fit")

	t.reset()
	t.logger = newLogger()
	start := time.Now()

	parsed, nYes, nNo, err := validateTrainingSet(rows, labels)
	if err != nil {
		t.logger.Error("Fit rejected input", err, log.OperationKey, log.OperationFit)
		return err
	}

	t.nAttributes = len(rows[0])
	var none V
	root := newNode(0, copyRows(rows), parsed, t.nAttributes, nYes, nNo, "", none, false, NoParent)
	t.nodes = []*Node[V]{root}

	if err := t.build(0); err != nil {
		t.reset()
		return err
	}
	t.state.SetFitted(t.nAttributes, len(rows))

	logf := t.logger.Debug
	if t.cfg.verbose {
		logf = t.logger.Info
	}
	logf("Fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(rows),
		log.AttributesKey, t.nAttributes,
		log.YesCountKey, nYes,
		log.NoCountKey, nNo,
		log.TreeDepthKey, t.GetDepth(),
		log.TreeNodesKey, len(t.nodes),
		log.TreeLeavesKey, t.GetNLeaves(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (t *DecisionTreeClassifier[V]) reset() {
	t.nodes = nil
	t.nAttributes = 0
	t.state.Reset()
}

func validateTrainingSet[V comparable](rows [][]V, labels []string) ([]Label, int, int, error) {
	const op = "DecisionTreeClassifier.Fit"
	if len(rows) == 0 {
		return nil, 0, 0, errors.NewMalformedInputError(op, -1, "empty training data")
	}
	if len(labels) != len(rows) {
		return nil, 0, 0, errors.NewMalformedInputError(op, -1,
			fmt.Sprintf("got %d labels for %d rows", len(labels), len(rows)))
	}
	width := len(rows[0])
	if width == 0 {
		return nil, 0, 0, errors.NewMalformedInputError(op, 0, "rows have no attributes")
	}

	parsed := make([]Label, len(labels))
	nYes, nNo := 0, 0
	for i, row := range rows {
		if len(row) != width {
			return nil, 0, 0, errors.NewMalformedInputError(op, i,
				fmt.Sprintf("row has %d attributes, expected %d", len(row), width))
		}
		l, ok := ParseLabel(labels[i])
		if !ok {
			return nil, 0, 0, errors.NewMalformedInputError(op, i,
				fmt.Sprintf("label %q is not yes or no", labels[i]))
		}
		parsed[i] = l
		if l == Yes {
			nYes++
		} else {
			nNo++
		}
	}
	return parsed, nYes, nNo, nil
}

func copyRows[V comparable](rows [][]V) [][]V {
	out := make([][]V, len(rows))
	for i, row := range rows {
		out[i] = append([]V(nil), row...)
	}
	return out
}

// build resolves node idx and, if it splits, creates and builds its children.
func (t *DecisionTreeClassifier[V]) build(idx int) error {
	node := t.nodes[idx]
	if err := node.computeBestAttribute(); err != nil {
		return err
	}

	if node.Rule == NoRule {
		node.resolveLeaf(node.majority())
		return nil
	}

	if node.RuleString == "" {
		node.RuleString += fmt.Sprintf("%d = ", node.Rule)
	} else {
		node.RuleString += fmt.Sprintf(", %d = ", node.Rule)
	}

	// Reuse the grouping computed for the chosen attribute.
	vc := node.counts[node.Rule]
	dataSplit := make([][][]V, len(vc.values))
	labelsSplit := make([][]Label, len(vc.values))
	for i, row := range node.data {
		k := vc.index[row[node.Rule]]
		dataSplit[k] = append(dataSplit[k], row)
		labelsSplit[k] = append(labelsSplit[k], node.labels[i])
	}

	for k, value := range vc.values {
		child := newNode(node.Depth+1, dataSplit[k], labelsSplit[k], node.NAttributes,
			vc.counts[k][0], vc.counts[k][1], node.RuleString+fmt.Sprint(value), value, true, idx)
		childIdx := len(t.nodes)
		t.nodes = append(t.nodes, child)
		node.addChild(value, childIdx)

		if child.N > 0 {
			if err := t.build(childIdx); err != nil {
				return err
			}
			continue
		}
		// Children are only created for observed values, so this branch is
		// unreachable; an empty child takes its parent's majority.
		child.resolveLeaf(node.majority())
	}
	return nil
}

// Root returns the root node, or nil before Fit.
func (t *DecisionTreeClassifier[V]) Root() *Node[V] {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Node returns the node at arena index i.
func (t *DecisionTreeClassifier[V]) Node(i int) (*Node[V], bool) {
	if i < 0 || i >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[i], true
}

// NodeCount returns the number of nodes in the arena.
func (t *DecisionTreeClassifier[V]) NodeCount() int {
	return len(t.nodes)
}

// NAttributes returns the row width seen during Fit.
func (t *DecisionTreeClassifier[V]) NAttributes() int {
	return t.nAttributes
}

// Path returns the arena indices from the root down to node i.
func (t *DecisionTreeClassifier[V]) Path(i int) []int {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	var path []int
	for ; i != NoParent; i = t.nodes[i].Parent {
		path = append(path, i)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// GetDepth returns the depth of the deepest node (0 for a single leaf).
func (t *DecisionTreeClassifier[V]) GetDepth() int {
	depth := 0
	for _, n := range t.nodes {
		if n.Depth > depth {
			depth = n.Depth
		}
	}
	return depth
}

// GetNLeaves returns the number of leaves.
func (t *DecisionTreeClassifier[V]) GetNLeaves() int {
	leaves := 0
	for _, n := range t.nodes {
		if n.IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Rules returns the rule string of every leaf in depth-first pre-order,
// e.g. "2 = 1, 0 = 3: yes".
func (t *DecisionTreeClassifier[V]) Rules() []string {
	if len(t.nodes) == 0 {
		return nil
	}
	var rules []string
	t.walk(0, func(n *Node[V]) {
		if n.IsLeaf() {
			rules = append(rules, n.RuleString)
		}
	})
	return rules
}

// walk visits the subtree at idx in depth-first pre-order.
func (t *DecisionTreeClassifier[V]) walk(idx int, visit func(*Node[V])) {
	n := t.nodes[idx]
	visit(n)
	for _, e := range n.Children {
		t.walk(e.Node, visit)
	}
}

// FeatureImportances returns, per attribute, the information gain of every
// split on it weighted by the fraction of training rows reaching the split,
// normalised to sum to 1. All zeros when the root is a leaf.
func (t *DecisionTreeClassifier[V]) FeatureImportances() ([]float64, error) {
	if err := t.state.RequireFitted("FeatureImportances"); err != nil {
		return nil, err
	}
	importances := make([]float64, t.nAttributes)
	rootN := float64(t.nodes[0].N)
	total := 0.0
	for _, n := range t.nodes {
		if n.Rule == NoRule || n.Rule >= len(n.Gains) {
			continue
		}
		w := float64(n.N) / rootN * n.Gains[n.Rule]
		importances[n.Rule] += w
		total += w
	}
	if total > 0 {
		for i := range importances {
			importances[i] /= total
		}
	}
	return importances, nil
}

// AttributeName returns the configured display name of attribute j or its index.
func (t *DecisionTreeClassifier[V]) AttributeName(j int) string {
	if j >= 0 && j < len(t.cfg.attributeNames) && t.cfg.attributeNames[j] != "" {
		return t.cfg.attributeNames[j]
	}
	return fmt.Sprintf("%d", j)
}

// GetParams returns the hyperparameters.
func (t *DecisionTreeClassifier[V]) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"unseen_policy":   t.cfg.unseenPolicy.String(),
		"verbose":         t.cfg.verbose,
		"attribute_names": append([]string(nil), t.cfg.attributeNames...),
	}
}

// SetParams updates hyperparameters. Unknown keys and values of the wrong
// type are rejected with a ValidationError and nothing is changed.
func (t *DecisionTreeClassifier[V]) SetParams(params map[string]interface{}) error {
	cfg := t.cfg
	for key, value := range params {
		switch key {
		case "unseen_policy":
			switch v := value.(type) {
			case string:
				p, err := ParseUnseenPolicy(v)
				if err != nil {
					return err
				}
				cfg.unseenPolicy = p
			case UnseenPolicy:
				if v != UnseenVote && v != UnseenError {
					return errors.NewValidationError(key, "unknown policy", v)
				}
				cfg.unseenPolicy = v
			default:
				return errors.NewValidationError(key, "must be a string or UnseenPolicy", value)
			}
		case "verbose":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be a bool", value)
			}
			cfg.verbose = v
		case "attribute_names":
			v, ok := value.([]string)
			if !ok {
				return errors.NewValidationError(key, "must be a []string", value)
			}
			cfg.attributeNames = append([]string(nil), v...)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	t.cfg = cfg
	return nil
}
