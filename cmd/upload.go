// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"tablepad/cli/internal/dispatch"
	"tablepad/cli/internal/ui"

	"github.com/spf13/cobra"
)

// uploadCmd sends CSV files to the backend in a single multipart request.
var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload CSV files to the backend",
	Long: `Upload sends one or more CSV files to the backend in a single request. Each
file becomes a table named after the file. The table listing is shown afterwards.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		files, err := readFiles(args)
		if err != nil {
			return err
		}

		e := newEnv(envOptions{spinner: true})
		e.state.Init(ctx)

		outcome, err := e.dispatch.SubmitUpload(ctx, e.state, files)
		if outcome != dispatch.OutcomeStale {
			e.printer.Print(ui.FormatListing(e.listing.Links()))
		}
		return outcomeErr(outcome, err)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
