package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tvhshrink/internal/config"
	"tvhshrink/internal/logging"
	"tvhshrink/internal/preflight"
	"tvhshrink/internal/workflow"
)

// completionOK is the status TVHeadend passes for a recording that finished
// without errors. Every other value means there is nothing worth processing.
const completionOK = "OK"

func newRootCommand() *cobra.Command {
	var configFlag string

	cmdCtx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "tvhshrink <recording> <status> [comskip-ini]",
		Short: "TVHeadend DVR post-processor",
		Long: `tvhshrink is invoked by TVHeadend when a recording finishes. It detects
commercial breaks, embeds them as chapters, transcodes the recording to a
smaller MP4 next to the original, reports the move back to TVHeadend, and
removes the original transport stream.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, cmdCtx, args)
		},
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The root invocation validates its trigger arguments before touching
		// configuration; a broken config must not turn a no-op call from
		// TVHeadend into a non-zero exit.
		if cmd == rootCmd || shouldSkipConfig(cmd) {
			return nil
		}
		_, err := cmdCtx.ensureConfig()
		return err
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSegmentsCommand())
	rootCmd.AddCommand(newProbeCommand(cmdCtx))
	rootCmd.AddCommand(newConfigCommand(cmdCtx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runRoot(cmd *cobra.Command, cmdCtx *commandContext, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return cmd.Usage()
	}
	recordingID := strings.TrimSpace(args[0])
	status := strings.TrimSpace(args[1])

	if status != completionOK {
		fmt.Fprintf(cmd.OutOrStdout(), "Recording %s completed with status %q; nothing to do\n", recordingID, status)
		return nil
	}

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	if len(args) == 3 {
		if ini := strings.TrimSpace(args[2]); ini != "" {
			expanded, err := config.ExpandPath(ini)
			if err != nil {
				return fmt.Errorf("resolve comskip ini: %w", err)
			}
			cfg.Detector.INI = expanded
		}
	}

	for _, dep := range preflight.CheckSystemDeps(cfg) {
		if !dep.Available && !dep.Optional {
			return fmt.Errorf("dependency %s unavailable: %s", dep.Name, dep.Detail)
		}
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline, err := workflow.New(cfg, workflow.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := pipeline.Process(signalCtx, recordingID); err != nil {
		return err
	}
	return nil
}
