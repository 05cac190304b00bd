// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"tablepad/cli/internal/dispatch"

	"github.com/spf13/cobra"
)

var resetYes bool

// resetCmd deletes every CSV file held by the backend after confirmation.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all CSV files held by the backend",
	Long: `Reset deletes every CSV file the backend holds. You are asked to confirm
first; answering anything but "yes" leaves everything as it was.

Use --yes to skip the question in scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts := envOptions{spinner: true}
		if resetYes {
			opts.confirmer = dispatch.ConfirmFunc(func(context.Context, string) (bool, error) {
				return true, nil
			})
		}
		e := newEnv(opts)
		e.state.Init(ctx)

		return outcomeErr(e.dispatch.SubmitReset(ctx, e.state))
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}
