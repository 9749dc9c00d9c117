// Package catree grows ID3 decision trees over categorical data to predict a
// yes/no label, and uses them to classify new samples.
//
// catree offers a scikit-learn-like API (Fit, Predict, Score, GetParams,
// SetParams) and a command line tool for working with CSV and SQLite data.
//
// # Features
//
//   - Exact ID3: entropy, information gain and first-wins tie breaking
//   - Categorical values of any comparable Go type
//   - Weighted vote over all branches for values never seen in training
//   - Readable rule traces and per-leaf rule strings
//   - Attribute importances with bar chart output
//   - Quantile discretization of numeric columns
//   - Structured logging and wrapped, stack-carrying errors
//
// # Installation
//
//	go get github.com/YuminosukeSato/catree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/catree/sklearn/tree"
//	)
//
//	func main() {
//	    rows := [][]string{
//	        {"sunny", "high"}, {"sunny", "normal"},
//	        {"overcast", "high"}, {"rain", "high"},
//	    }
//	    labels := []string{"no", "yes", "yes", "yes"}
//
//	    clf := tree.NewDecisionTreeClassifier[string](
//	        tree.WithAttributeNames("outlook", "humidity"),
//	    )
//	    if err := clf.Fit(rows, labels); err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = clf.PrintTrace(os.Stdout)
//
//	    pred, err := clf.Predict([]string{"sunny", "high"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(pred) // no
//	}
//
// # Packages
//
//   - sklearn/tree: the ID3 classifier, traces, persistence and plots
//   - dataset: CSV and SQLite loading, YAML metadata and encoding
//   - preprocessing: column selection and quantile discretization
//   - metrics: accuracy and confusion matrices
//   - core/model: shared interfaces, fitted state and gob persistence
//   - pkg/errors: error types, warnings and panic recovery
//   - pkg/log: the logging interface and its zerolog backend
//   - cmd/catree: the command line tool
//
// # Command Line
//
//	catree grow -i weather.csv -m weather.yml -o weather.gob --trace
//	catree predict -M weather.gob -i new.csv
//	catree test -M weather.gob -i holdout.csv
//	catree importances -M weather.gob -o importances.png
//
// # License
//
// catree is released under the MIT License.
package catree
