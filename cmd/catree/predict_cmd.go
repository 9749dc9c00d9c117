package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/catree/dataset"
	"github.com/YuminosukeSato/catree/sklearn/tree"
)

type modelCmdConfig struct {
	*rootCmdConfig
	modelInput string
	dataInput  string
	unseen     string
}

func (mcc *modelCmdConfig) Validate() error {
	if mcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}

// load reads the model file and the data to run it on, encoded with the
// model's encoder.
func (mcc *modelCmdConfig) load(cmd *cobra.Command) (*tree.DecisionTreeClassifier[string], *dataset.Encoded, error) {
	if err := mcc.Validate(); err != nil {
		return nil, nil, err
	}
	clf, enc, err := loadModelFile(mcc.modelInput)
	if err != nil {
		return nil, nil, err
	}
	if mcc.unseen != "" {
		if err := clf.SetParams(map[string]interface{}{"unseen_policy": mcc.unseen}); err != nil {
			return nil, nil, err
		}
	}
	mcc.Logf("Reading data from %s...", mcc.dataInput)
	tbl, err := dataset.Read(cmd.Context(), mcc.dataInput, &enc.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("reading data: %w", err)
	}
	data, err := enc.Encode(tbl)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding data: %w", err)
	}
	return clf, data, nil
}

func (mcc *modelCmdConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(mcc.modelInput), "model", "M", "", "path to a model file written by grow (required)")
	cmd.Flags().StringVarP(&(mcc.dataInput), "input", "i", "-", "path to an input CSV (.csv) or SQLite3 (.db) file (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(mcc.unseen), "unseen", "", "override the model's unseen value policy: vote or error")
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &modelCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label of every sample in a data set",
		Long:  `Use a grown tree to predict yes or no for every row of a data set, one prediction per line`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, data, err := config.load(cmd)
			if err != nil {
				return err
			}
			preds, err := clf.PredictAllContext(cmd.Context(), data.Rows, 0)
			if err != nil {
				return fmt.Errorf("predicting: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, p := range preds {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	config.addFlags(cmd)
	return cmd
}
