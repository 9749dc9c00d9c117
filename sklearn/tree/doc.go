/*
Package tree implements an ID3 decision tree for binary yes/no classification
over categorical attributes.

The tree splits on the attribute with the largest positive information gain
(entropy reduction); the first attribute wins ties, and a node becomes a leaf
predicting its majority label (ties favour yes) once no attribute reduces the
entropy. Attribute values are opaque categories compared with ==; numeric
columns must be discretized first (see preprocessing.QuantileDiscretizer).

Example:

	clf := tree.NewDecisionTreeClassifier[string](
		tree.WithAttributeNames("outlook", "temperature", "humidity", "wind"),
	)
	if err := clf.Fit(rows, labels); err != nil {
		return err
	}
	label, err := clf.Predict([]string{"sunny", "cool", "high", "strong"})
	clf.PrintTrace(os.Stdout)

# Unseen categories

A sample may carry a value that never reached the node being evaluated. With
the default UnseenVote policy the sample is predicted against every child of
that node and each result is weighted by the child's training size; the
signed sum decides the label, ties go to yes. The vote recurses into every
child subtree without caching, so its cost grows with the size of the subtree
below the node. UnseenError returns an UnseenCategoryError instead.

# Structure

Nodes are stored in an arena: Node(0) is the root, Node.Parent and Edge.Node
are arena indices, and children keep the order in which their values were
first seen in the training data. Training and tracing are deterministic for a
given row order. A fitted tree is read-only during prediction, so Predict
may be called concurrently; PredictAllContext spreads a batch over workers.

The builder resolves a child with an empty partition as a leaf carrying its
parent's majority. Children are only created for observed values, so this
never happens for trees grown by Fit.

The gonum adapter MatrixClassifier implements model.Classifier for
float-coded categorical matrices.
*/
package tree
