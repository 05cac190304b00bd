// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"runtime"

	"tablepad/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// userAgent identifies this build to the backend.
func userAgent() string {
	return "tablepad-cli/" + Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion()
		return nil
	},
}

func printVersion() {
	fmt.Printf("tablepad %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	if cfg.Server.URL != "" {
		fmt.Printf("server   %s\n", logging.Mask(cfg.Server.URL))
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
