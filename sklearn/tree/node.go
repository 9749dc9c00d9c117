package tree

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// Label is a binary class label. Only Yes and No are valid.
type Label string

const (
	Yes Label = "yes"
	No  Label = "no"
)

// ParseLabel accepts exactly "yes" or "no".
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case Yes:
		return Yes, true
	case No:
		return No, true
	default:
		return "", false
	}
}

const (
	// NoRule marks a node that does not split (a leaf, or a node whose split
	// has not been chosen yet).
	NoRule = -1
	// NoParent is the parent index of the root.
	NoParent = -1
)

// minGain is the smallest information gain treated as positive. Gains below
// it are floating point residue of a split that does not change the entropy.
const minGain = 1e-12

// valueCounts maps attribute values to [yes, no] counts, iterated in
// first-seen order so splits and traces are reproducible.
type valueCounts[V comparable] struct {
	values []V
	index  map[V]int
	counts [][2]int
}

func newValueCounts[V comparable]() *valueCounts[V] {
	return &valueCounts[V]{index: make(map[V]int)}
}

func (vc *valueCounts[V]) add(v V, l Label) {
	k, ok := vc.index[v]
	if !ok {
		k = len(vc.values)
		vc.index[v] = k
		vc.values = append(vc.values, v)
		vc.counts = append(vc.counts, [2]int{})
	}
	if l == Yes {
		vc.counts[k][0]++
	} else {
		vc.counts[k][1]++
	}
}

// Edge links a node to the child reached when the split attribute equals Value.
type Edge[V comparable] struct {
	Value V
	Node  int
}

// Node is one vertex of the tree arena. Exported fields describe the fitted
// tree and survive Save/Load; the partition itself is only kept in memory.
type Node[V comparable] struct {
	Depth       int
	N           int
	NYes        int
	NNo         int
	NAttributes int

	// Information is the entropy of the partition's labels.
	Information float64
	// Gains holds the information gain of every attribute at this node.
	// Empty for nodes resolved without evaluating a split.
	Gains []float64

	Rule       int
	Prediction Label
	RuleString string
	Children   []Edge[V]

	Category    V
	HasCategory bool
	Parent      int

	data   [][]V
	labels []Label
	counts []*valueCounts[V]
	lookup map[V]int
}

func newNode[V comparable](depth int, data [][]V, labels []Label, nAttributes, nYes, nNo int,
	ruleString string, category V, hasCategory bool, parent int) *Node[V] {
	n := &Node[V]{
		Depth:       depth,
		N:           len(data),
		NYes:        nYes,
		NNo:         nNo,
		NAttributes: nAttributes,
		Rule:        NoRule,
		RuleString:  ruleString,
		Category:    category,
		HasCategory: hasCategory,
		Parent:      parent,
		data:        data,
		labels:      labels,
	}
	if n.N > 0 {
		n.Information = computeInformation(nYes, nNo, n.N)
	}
	return n
}

// IsLeaf reports whether the node carries a prediction.
func (n *Node[V]) IsLeaf() bool {
	return n.Prediction != ""
}

// Partition returns the rows and labels routed to this node during Fit.
// Both are nil for a tree restored with Load.
func (n *Node[V]) Partition() ([][]V, []Label) {
	return n.data, n.labels
}

// ValueCounts returns, for attribute j, the observed values in first-seen
// order with their yes/no counts.
func (n *Node[V]) ValueCounts(j int) ([]V, [][2]int) {
	if j < 0 || j >= len(n.counts) {
		return nil, nil
	}
	return n.counts[j].values, n.counts[j].counts
}

// majority favours Yes on ties.
func (n *Node[V]) majority() Label {
	if n.NYes >= n.NNo {
		return Yes
	}
	return No
}

func (n *Node[V]) resolveLeaf(p Label) {
	n.Prediction = p
	n.RuleString += fmt.Sprintf(": %s", p)
}

func (n *Node[V]) addChild(value V, idx int) {
	n.Children = append(n.Children, Edge[V]{Value: value, Node: idx})
	if n.lookup == nil {
		n.lookup = make(map[V]int)
	}
	n.lookup[value] = idx
}

func (n *Node[V]) child(value V) (int, bool) {
	idx, ok := n.lookup[value]
	return idx, ok
}

func (n *Node[V]) reindex() {
	n.lookup = make(map[V]int, len(n.Children))
	for _, e := range n.Children {
		n.lookup[e.Value] = e.Node
	}
}

// computeInformation is the binary entropy of a yes/no distribution. A zero
// count is replaced by total before taking the logarithm, which makes its term
// vanish (total/total * log2(1) == 0) instead of evaluating log2(0).
func computeInformation(yes, no, total int) float64 {
	if yes == 0 {
		yes = total
	}
	if no == 0 {
		no = total
	}
	py := float64(yes) / float64(total)
	pn := float64(no) / float64(total)
	return -(py * math.Log2(py)) - (pn * math.Log2(pn))
}

// Entropy returns the binary entropy in bits of a partition with the given
// label counts.
func Entropy(yes, no int) (float64, error) {
	if yes < 0 || no < 0 {
		return 0, errors.NewValueError("Entropy", fmt.Sprintf("negative count (yes=%d, no=%d)", yes, no))
	}
	if yes+no == 0 {
		return 0, errors.WithStack(errors.ErrEmptyPartition)
	}
	return computeInformation(yes, no, yes+no), nil
}

// computeBestAttribute groups the partition by every attribute, records the
// information gain of each and sets Rule to the attribute with the largest
// positive gain. The first attribute wins ties. Rule stays NoRule when no
// attribute reduces the entropy.
func (n *Node[V]) computeBestAttribute() error {
	n.counts = make([]*valueCounts[V], n.NAttributes)
	for j := range n.counts {
		n.counts[j] = newValueCounts[V]()
	}
	for i, row := range n.data {
		for j := 0; j < n.NAttributes; j++ {
			n.counts[j].add(row[j], n.labels[i])
		}
	}

	n.Gains = make([]float64, n.NAttributes)
	best := 0.0
	for j, vc := range n.counts {
		weighted := 0.0
		for _, c := range vc.counts {
			size := c[0] + c[1]
			weighted += float64(size) / float64(n.N) * computeInformation(c[0], c[1], size)
		}

		gain := n.Information - weighted
		if err := errors.CheckScalar("information_gain", gain, j); err != nil {
			return err
		}
		n.Gains[j] = gain

		if gain <= minGain {
			continue
		}
		if n.Rule == NoRule || gain > best+minGain {
			n.Rule = j
			best = gain
		}
	}
	return nil
}
