package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func traceCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &modelCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the rules of a tree",
		Long:  `Print a grown tree depth first, one branch per line, with the prediction and supporting counts of every leaf`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			clf, _, err := loadModelFile(config.modelInput)
			if err != nil {
				return err
			}
			return clf.PrintTrace(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&(config.modelInput), "model", "M", "", "path to a model file written by grow (required)")
	return cmd
}

type importancesCmdConfig struct {
	modelCmdConfig
	output string
}

func importancesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importancesCmdConfig{modelCmdConfig: modelCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "importances",
		Short: "Print and plot the attribute importances of a tree",
		Long: `Print the information gain contributed by every attribute, weighted by the
share of training samples reaching each split, and optionally render it as a bar chart`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			clf, _, err := loadModelFile(config.modelInput)
			if err != nil {
				return err
			}
			importances, err := clf.FeatureImportances()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for j, imp := range importances {
				fmt.Fprintf(out, "%s\t%.4f\n", clf.AttributeName(j), imp)
			}
			if config.output == "" {
				return nil
			}
			config.Logf("Writing chart to %s...", config.output)
			return clf.PlotFeatureImportances(config.output)
		},
	}
	cmd.Flags().StringVarP(&(config.modelInput), "model", "M", "", "path to a model file written by grow (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to an image file (.png, .svg, .pdf) for the bar chart")
	return cmd
}
