package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

const traceIndent = "|   "

// PrintTrace writes the fitted tree to w in depth-first pre-order, one line
// per branch:
//
//	outlook = sunny
//	|   humidity = high: no (3/0)
//	|   humidity = normal: yes (2/0)
//	outlook = overcast: yes (4/0)
//
// Leaves show the prediction followed by the majority and minority counts.
// A tree whose root is a leaf prints a single "root" line.
func (t *DecisionTreeClassifier[V]) PrintTrace(w io.Writer) error {
	if err := t.state.RequireFitted("PrintTrace"); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	root := t.nodes[0]
	if root.IsLeaf() {
		fmt.Fprintf(bw, "root%s\n", leafSuffix(root))
	} else {
		t.walk(0, func(n *Node[V]) {
			if n.Parent == NoParent {
				return
			}
			parent := t.nodes[n.Parent]
			line := strings.Repeat(traceIndent, parent.Depth) +
				fmt.Sprintf("%s = %v", t.AttributeName(parent.Rule), n.Category)
			if n.IsLeaf() {
				line += leafSuffix(n)
			}
			fmt.Fprintln(bw, line)
		})
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write trace")
	}
	return nil
}

func leafSuffix[V comparable](n *Node[V]) string {
	majority, minority := n.NYes, n.NNo
	if n.Prediction == No {
		majority, minority = n.NNo, n.NYes
	}
	return fmt.Sprintf(": %s (%d/%d)", n.Prediction, majority, minority)
}

// String returns the trace, or a short description of an unfitted tree.
func (t *DecisionTreeClassifier[V]) String() string {
	var sb strings.Builder
	if err := t.PrintTrace(&sb); err != nil {
		return fmt.Sprintf("%s(unfitted)", modelName)
	}
	return sb.String()
}
