// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"tablepad/cli/internal/dispatch"
	"tablepad/cli/internal/workbench"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const sessionPrompt = "tablepad> "

// sessionCmd runs the interactive workbench.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive session",
	Long: `Session starts an interactive workbench: an SQL editor buffer, two staging
areas (run and golden), an output panel and the live table listing.

Uploads and runs happen in the background, so you can keep typing while they
are in flight. When several runs overlap, only the most recently issued one
updates the editor and output. Type 'help' inside the session for commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context(), envOptions{renderListing: true, showResults: true})
	},
}

func runSession(ctx context.Context, opts envOptions) error {
	s := &session{e: newEnv(opts)}
	return s.loop(ctx)
}

// session is one interactive lifecycle.
type session struct {
	e  *env
	wg sync.WaitGroup
}

var sessionHelp = []pterm.BulletListItem{
	{Level: 0, Text: "upload FILE...          upload CSV files"},
	{Level: 0, Text: "stage run|golden [FILE] fill a staging area from FILE or typed text"},
	{Level: 0, Text: "edit                    replace the editor buffer with typed text"},
	{Level: 0, Text: "run | golden            run the run or golden staging area"},
	{Level: 0, Text: "rerun                   run the editor buffer"},
	{Level: 0, Text: "reset                   delete all CSV files (asks first)"},
	{Level: 0, Text: "tables                  refresh the table listing"},
	{Level: 0, Text: "view TABLE [--print]    open or print a table"},
	{Level: 0, Text: "show                    show editor, output and staging areas"},
	{Level: 0, Text: "help | quit"},
}

func (s *session) loop(ctx context.Context) error {
	s.e.printer.Print(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint("tablepad session") +
		pterm.NewStyle(pterm.FgGray).Sprint(" · "+cfg.Server.URL+" · type 'help' for commands"))
	s.e.state.Init(ctx)

	defer s.wg.Wait()
	for {
		line, err := s.e.console.ReadLine(sessionPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name, args := parseSessionLine(line)
		switch name {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		if err := s.handle(ctx, name, args); err != nil && !errors.Is(err, errReported) {
			s.e.printer.Print(pterm.Warning.Sprint(err.Error()))
		}
	}
}

// parseSessionLine splits a command line into its name and arguments.
func parseSessionLine(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func (s *session) handle(ctx context.Context, name string, args []string) error {
	st := s.e.state
	switch name {
	case "upload":
		files, err := readFiles(args)
		if err != nil {
			return err
		}
		s.background(ctx, func(ctx context.Context) (dispatch.Outcome, error) {
			return s.e.dispatch.SubmitUpload(ctx, st, files)
		})
	case "stage":
		return s.stage(args)
	case "edit":
		text, err := s.e.console.ReadBlock("Edit SQL", st.Editor().Text())
		if err != nil {
			return err
		}
		return st.Stage(workbench.SourceBuffer, text)
	case "run", "golden", "rerun":
		src := map[string]workbench.Source{
			"run":    workbench.SourceRun,
			"golden": workbench.SourceGolden,
			"rerun":  workbench.SourceBuffer,
		}[name]
		s.background(ctx, func(ctx context.Context) (dispatch.Outcome, error) {
			return s.e.dispatch.SubmitRun(ctx, st, src)
		})
	case "reset":
		_, err := s.e.dispatch.SubmitReset(ctx, st)
		if err != nil {
			return errReported
		}
	case "tables":
		if err := s.e.listing.Refresh(ctx); err != nil {
			return s.e.reportFailure(err, "listing tables")
		}
	case "view":
		if len(args) == 0 {
			return errors.New("usage: view TABLE [--print]")
		}
		printTable := len(args) > 1 && (args[1] == "--print" || args[1] == "-p")
		return s.e.view(ctx, args[0], printTable)
	case "show":
		s.show()
	case "help", "?":
		list, _ := pterm.DefaultBulletList.WithItems(sessionHelp).Srender()
		s.e.printer.Print(list)
	default:
		return fmt.Errorf("unknown command %q (type 'help')", name)
	}
	return nil
}

// stage fills a staging area from a file or from typed text.
func (s *session) stage(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: stage run|golden [FILE]")
	}
	src, err := workbench.ParseSource(args[0])
	if err != nil || src == workbench.SourceBuffer {
		return errors.New("usage: stage run|golden [FILE]")
	}

	var text string
	if len(args) > 1 {
		text, err = readText(args[1])
	} else {
		current, _ := s.e.state.SourceText(src)
		text, err = s.e.console.ReadBlock("Stage "+src.String(), current)
	}
	if err != nil {
		return err
	}
	if err := s.e.state.Stage(src, text); err != nil {
		return err
	}
	s.e.printer.Print(pterm.NewStyle(pterm.FgGray).Sprintf("staged %d bytes in %s", len(text), src))
	return nil
}

func (s *session) show() {
	st := s.e.state
	s.e.surface.ShowBuffer(st.Editor().Text())
	s.e.surface.ShowOutput(st.Output())
	for _, src := range []workbench.Source{workbench.SourceRun, workbench.SourceGolden} {
		text, _ := st.SourceText(src)
		if text == "" {
			continue
		}
		s.e.printer.Print(pterm.NewStyle(pterm.FgGray).Sprintf("[%s] ", src) + firstLine(text))
	}
}

// background runs a command without blocking the prompt.
func (s *session) background(ctx context.Context, fn func(context.Context) (dispatch.Outcome, error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		outcome, err := fn(ctx)
		if err != nil {
			logger.Debug("background command failed", "outcome", outcome.String(), "error", err)
		}
	}()
}

func firstLine(text string) string {
	line, rest, _ := strings.Cut(strings.TrimSpace(text), "\n")
	if rest != "" {
		line += " …"
	}
	return line
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
