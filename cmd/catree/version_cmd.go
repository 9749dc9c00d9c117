package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in catree's version
	VersionMajor = 0
	// VersionMinor is the minor number in catree's version
	VersionMinor = 1
	// VersionPatch is the patch number in catree's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of catree",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catree v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
