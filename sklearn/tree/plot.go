package tree

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// PlotFeatureImportances renders FeatureImportances as a bar chart. The
// image format follows the extension of path (.png, .svg, .pdf, ...).
func (t *DecisionTreeClassifier[V]) PlotFeatureImportances(path string) error {
	importances, err := t.FeatureImportances()
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Feature importances"
	p.Y.Label.Text = "Weighted information gain"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values(importances), vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "build bar chart")
	}
	p.Add(bars)

	names := make([]string, len(importances))
	for j := range names {
		names[j] = t.AttributeName(j)
	}
	p.NominalX(names...)

	width := vg.Length(len(importances)) * vg.Centimeter * 2
	if width < 10*vg.Centimeter {
		width = 10 * vg.Centimeter
	}
	// Drawing backends may panic on degenerate input.
	err = errors.SafeExecute("PlotFeatureImportances", func() error {
		return p.Save(width, 10*vg.Centimeter, path)
	})
	if err != nil {
		return errors.Wrapf(err, "save chart to %s", path)
	}
	return nil
}
