package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/fpgaflow/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fpgaflow [operation...]",
	Short: "fpgaflow builds, uploads and cleans an ECP5 FPGA design",
	Long: `fpgaflow drives the open-source ECP5 toolchain (yosys, nextpnr-ecp5, ecppack, openocd)
through a fixed, fail-fast pipeline.

Operations: ` + strings.Join(cli.Operations(), ", ") + `. They run in the order given and the
first failure stops the rest. Without arguments, build runs.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, args)
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		err := cli.Execute(sigCtx, opts)
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), ">>> Interrupted by %s.\n", sig)
		}
		return err
	},
}

// runOptions reads the persistent flags shared by every command.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	opts := cli.RunOptions{Operations: args}
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.LogFormat, _ = cmd.Flags().GetString("log-format")
	opts.Platform, _ = cmd.Flags().GetString("platform")
	return opts
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the FPGA project")
	rootCmd.PersistentFlags().String("config", "", "Project file (default: fpgaflow.yaml in --dir, built-in project otherwise)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: 'text' or 'json'")
	rootCmd.PersistentFlags().String("platform", "", "Toolchain layout: 'posix' or 'windows' (default: detected from the host)")

	rootCmd.Flags().Bool("dry-run", false, "Print tool command lines instead of running them")
	rootCmd.Flags().BoolP("watch", "w", false, "Re-run the operations whenever a source, pin or project file changes")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after each run")
	rootCmd.Flags().String("metrics-addr", "", "In watch mode, serve /metrics and /healthz on this address")
}
