package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tvhshrink/internal/config"
	"tvhshrink/internal/preflight"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(cmdCtx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set registry.url (or export TVHEADEND_URL) before running tvhshrink.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and probe the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", cmdCtx.configPath)
			if !cmdCtx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			failures := 0
			fmt.Fprintln(out, "Environment checks:")
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				if !result.Passed {
					failures++
				}
				fmt.Fprintln(out, renderCheckLine(result.Name, result.Passed, result.Detail, colorize))
			}

			fmt.Fprintln(out, "External tools:")
			rows := make([][]string, 0, 3)
			for _, dep := range preflight.CheckSystemDeps(cfg) {
				state := "found"
				if !dep.Available {
					state = "missing"
					if !dep.Optional {
						failures++
					}
				}
				detail := dep.Description
				if dep.Detail != "" {
					detail = dep.Detail
				}
				rows = append(rows, []string{dep.Name, dep.Command, state, detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "State", "Notes"}, rows))

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
