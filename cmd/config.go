// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"tablepad/cli/internal/config"
	"tablepad/cli/internal/logging"
	"tablepad/cli/internal/serverurl"
	"tablepad/cli/internal/xdg"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// configCmd groups commands that inspect and change the stored configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		if configLoadErr != nil {
			pterm.Warning.Printfln("config file ignored: %v", configLoadErr)
		}

		lines := []string{
			"file:      " + p,
			"server:    " + logging.Mask(cfg.Server.URL),
			"timeout:   " + cfg.Server.Timeout.String(),
			"log level: " + cfg.LogLevel,
			"endpoints: " + strings.Join([]string{
				"upload=" + cfg.Server.Endpoints.Upload,
				"run=" + cfg.Server.Endpoints.Run,
				"reset=" + cfg.Server.Endpoints.Reset,
				"tables=" + cfg.Server.Endpoints.Tables,
				"view=" + cfg.Server.Endpoints.View,
			}, " "),
		}
		if dir, err := xdg.StateDir(); err == nil {
			lines = append(lines, "log file:  "+filepath.Join(dir, logging.LogFileName))
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Configuration")).
			WithPadding(1).
			Println(strings.Join(lines, "\n"))
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server URL",
	Short: "Validate and store the backend base URL",
	Long: `Set-server stores the backend base URL in the config file. A bare host such
as "localhost:5000" is taken as http://localhost:5000.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := serverurl.Normalize(args[0])
		if err != nil {
			return err
		}

		c := cfg
		c.Server.URL = u
		if err := c.Validate(); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		pterm.Success.Printfln("Server set to %s", logging.Mask(u))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetServerCmd)
}
