package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/catree/dataset"
	"github.com/YuminosukeSato/catree/sklearn/tree"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	unseen        string
	trace         bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict a yes/no label column.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			policy, err := tree.ParseUnseenPolicy(config.unseen)
			if err != nil {
				return err
			}
			md, err := dataset.LoadMetadata(config.metadataInput)
			if err != nil {
				return err
			}
			config.Logf("Reading training set from %s...", config.dataInput)
			tbl, err := dataset.Read(cmd.Context(), config.dataInput, md)
			if err != nil {
				return fmt.Errorf("reading training set: %w", err)
			}
			enc := dataset.NewEncoder(md)
			data, err := enc.FitEncode(tbl)
			if err != nil {
				return fmt.Errorf("encoding training set: %w", err)
			}

			clf := tree.NewDecisionTreeClassifier[string](
				tree.WithUnseenPolicy(policy),
				tree.WithAttributeNames(enc.DisplayNames()...),
				tree.WithVerbose(config.verbose),
			)
			config.Logf("Growing tree from a set with %d samples and %d attributes to predict %s...",
				len(data.Rows), len(data.Attributes), md.Label)
			if err := clf.Fit(data.Rows, data.Labels); err != nil {
				return fmt.Errorf("growing the tree: %w", err)
			}
			config.Logf("Done: depth %d, %d leaves", clf.GetDepth(), clf.GetNLeaves())

			if config.trace {
				if err := clf.PrintTrace(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return saveModelFile(config.output, clf, enc)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "-", "path to an input CSV (.csv) or SQLite3 (.db) file with data to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the label, attributes and discretization of the input (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "model.gob", "path to the file the grown tree is written to")
	cmd.Flags().StringVar(&(config.unseen), "unseen", "vote", "what to do with attribute values not seen in training: vote or error")
	cmd.Flags().BoolVar(&(config.trace), "trace", false, "print the grown tree to STDOUT")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.output == "" {
		return fmt.Errorf("output flag must not be empty")
	}
	return nil
}
