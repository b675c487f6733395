package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fpgaflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fpgaflow",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fpgaflow version %s\n", strings.TrimSpace(fpgaflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
