package main

import (
	"github.com/aretw0/fpgaflow/internal/cli"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the toolchain and project inputs are in place",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, nil)
		opts.Stdout = cmd.OutOrStdout()
		return cli.RunDoctor(opts)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
