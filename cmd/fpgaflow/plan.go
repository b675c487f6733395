package main

import (
	"github.com/aretw0/fpgaflow/internal/cli"
	"github.com/spf13/cobra"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [operation...]",
	Short: "Export the stage graph visualization",
	Long:  `Resolves the toolchain and outputs a Mermaid diagram (graph LR) of the tool invocations, without running any tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, args)
		opts.Stdout = cmd.OutOrStdout()
		return cli.RunPlan(opts)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
