// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the tablepad CLI.
// It implements an interactive session plus one-shot subcommands that upload CSV
// files, run SQL through the backend, reset it and browse the tables it holds,
// using the Cobra CLI framework and pterm for terminal output.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tablepad/cli/internal/config"
	"tablepad/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion   bool
	serverFlag    string
	timeoutFlag   time.Duration
	verboseFlag   bool
	cfg           config.Config
	logger        = logging.Discard()
	closeLogger   = func() error { return nil }
	configLoadErr error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tablepad",
	Short: "Tablepad CLI: upload CSV files, run SQL over them and browse the results",
	Long: `Tablepad is a command-line client for the tablepad backend. Upload CSV files,
edit SQL, send it to the backend and see the rewritten statement and its output,
and browse the tables the backend holds.

Start an interactive session with 'tablepad session', or use the one-shot
commands (run, upload, reset, tables, view).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = closeLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("", err))
		}
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds the logger.
// A broken config file does not stop 'config' subcommands from running.
func setup(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		configLoadErr = err
		if !isConfigCommand(cmd) {
			return fmt.Errorf("load config: %w", err)
		}
		if c, err = config.Defaults(); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("server") {
		c.Server.URL = serverFlag
	}
	if cmd.Flags().Changed("timeout") {
		c.Server.Timeout = timeoutFlag
	}
	if cmd.Flags().Changed("server") || cmd.Flags().Changed("timeout") {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c

	logger, closeLogger = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: verboseFlag,
	})
	slog.SetDefault(logger)
	logger.Debug("configuration loaded",
		"server", logging.Mask(cfg.Server.URL),
		"timeout", cfg.Server.Timeout,
		"command", cmd.CommandPath(),
	)
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd || c == versionCmd {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Backend base URL (overrides config and TABLEPAD_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Timeout for each backend request (e.g. 30s)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose debug output")
}
