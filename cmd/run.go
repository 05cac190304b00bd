// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"

	"tablepad/cli/internal/terminal"
	"tablepad/cli/internal/workbench"

	"github.com/spf13/cobra"
)

var (
	runFile   string
	runGolden string
)

// runCmd sends SQL to the backend and shows the rewritten statement and its output.
var runCmd = &cobra.Command{
	Use:   "run [SQL]",
	Short: "Run SQL through the backend and show the result",
	Long: `Run sends SQL to the backend and shows the statement it actually ran together
with its output.

The text comes from exactly one place:
  tablepad run "SELECT * FROM orders"   the editor buffer
  tablepad run --file query.sql         the run staging area
  tablepad run --golden expected.sql    the golden staging area
  echo "SELECT 1" | tablepad run        stdin, into the editor buffer

A path of "-" for --file or --golden reads stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := newEnv(envOptions{showResults: true, spinner: true})
		e.state.Init(ctx)

		src, err := stageRunInput(e.state, args)
		if err != nil {
			return err
		}
		return outcomeErr(e.dispatch.SubmitRun(ctx, e.state, src))
	},
}

// stageRunInput places the text for this invocation and returns its source.
func stageRunInput(st *workbench.State, args []string) (workbench.Source, error) {
	switch {
	case runGolden != "":
		text, err := readText(runGolden)
		if err != nil {
			return 0, err
		}
		return workbench.SourceGolden, st.Stage(workbench.SourceGolden, text)
	case runFile != "":
		text, err := readText(runFile)
		if err != nil {
			return 0, err
		}
		return workbench.SourceRun, st.Stage(workbench.SourceRun, text)
	case len(args) == 1:
		return workbench.SourceBuffer, st.Stage(workbench.SourceBuffer, args[0])
	case !terminal.IsInteractive():
		text, err := readText("-")
		if err != nil {
			return 0, err
		}
		return workbench.SourceBuffer, st.Stage(workbench.SourceBuffer, text)
	default:
		return 0, errors.New("nothing to run: pass SQL, --file or --golden")
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Read SQL for the run staging area from a file")
	runCmd.Flags().StringVarP(&runGolden, "golden", "g", "", "Read SQL for the golden staging area from a file")
	runCmd.MarkFlagsMutuallyExclusive("file", "golden")
}
