// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tablepad/cli/internal/listing"
	"tablepad/cli/internal/ui"

	"github.com/spf13/cobra"
)

var tablesWatch time.Duration

// tablesCmd lists the tables the backend holds with their viewer links.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables held by the backend",
	Long: `Tables lists every table the backend holds, in backend order, each with the
address of its viewer page.

With --watch the list stays on screen and refreshes on the given interval
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if tablesWatch > 0 {
			if tablesWatch < time.Second {
				return fmt.Errorf("--watch interval must be at least 1s, got %s", tablesWatch)
			}
			e := newEnv(envOptions{})
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return ui.WatchListing(ctx, tablesWatch, func(ctx context.Context) []listing.Link {
				if err := e.listing.Refresh(ctx); err != nil {
					logger.Warn("listing refresh failed", "error", err)
				}
				return e.listing.Links()
			})
		}

		e := newEnv(envOptions{spinner: true})
		if err := e.listing.Refresh(ctx); err != nil {
			return e.reportFailure(err, "listing tables")
		}
		e.printer.Print(ui.FormatListing(e.listing.Links()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().DurationVarP(&tablesWatch, "watch", "w", 0, "Keep refreshing the list on this interval (e.g. 5s)")
}
