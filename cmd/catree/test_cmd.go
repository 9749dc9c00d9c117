package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/catree/metrics"
	"github.com/YuminosukeSato/catree/sklearn/tree"
)

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &modelCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled test data set`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, data, err := config.load(cmd)
			if err != nil {
				return err
			}
			if data.Labels == nil {
				return fmt.Errorf("test data has no label column")
			}
			config.Logf("Testing tree against a set with %d samples...", len(data.Rows))
			preds, err := clf.PredictAllContext(cmd.Context(), data.Rows, 0)
			if err != nil {
				return fmt.Errorf("testing tree: %w", err)
			}

			yTrue := mat.NewVecDense(len(preds), nil)
			yPred := mat.NewVecDense(len(preds), nil)
			for i, p := range preds {
				if data.Labels[i] == string(tree.Yes) {
					yTrue.SetVec(i, 1)
				}
				if p == tree.Yes {
					yPred.SetVec(i, 1)
				}
			}
			cm, err := metrics.NewConfusionMatrix(yTrue, yPred)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Accuracy: %.4f (%d/%d)\n", cm.Accuracy(), cm.TruePositive+cm.TrueNegative, cm.Total())
			fmt.Fprintf(out, "Precision: %.4f\n", cm.Precision())
			fmt.Fprintf(out, "Recall: %.4f\n", cm.Recall())
			fmt.Fprintln(out, cm)
			return nil
		},
	}
	config.addFlags(cmd)
	return cmd
}
