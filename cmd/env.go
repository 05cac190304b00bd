// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tablepad/cli/internal/backend"
	"tablepad/cli/internal/dispatch"
	"tablepad/cli/internal/httperrors"
	"tablepad/cli/internal/listing"
	"tablepad/cli/internal/serverurl"
	"tablepad/cli/internal/terminal"
	"tablepad/cli/internal/ui"
	"tablepad/cli/internal/workbench"
)

// env is everything one lifecycle needs: the backend client, the client state
// and the dispatcher, wired to terminal surfaces.
type env struct {
	api      backend.API
	printer  *ui.Printer
	console  *ui.Console
	notifier *ui.Notifier
	surface  *ui.Surface
	listing  *listing.Sync
	state    *workbench.State
	dispatch *dispatch.Dispatcher
}

type envOptions struct {
	// renderListing prints the listing after every successful refresh.
	renderListing bool
	// showResults prints the editor and output surface when a run lands.
	showResults bool
	// spinner animates each exchange; only for one-shot commands.
	spinner bool
	// confirmer overrides the interactive reset confirmation.
	confirmer dispatch.Confirmer
	// in and out default to stdin and stdout.
	in  io.Reader
	out io.Writer
}

func newEnv(opts envOptions) *env {
	in, out := opts.in, opts.out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	p := ui.NewPrinter(out)

	var api backend.API = backend.New(cfg.Server, userAgent())
	if opts.spinner {
		api = spinningAPI{API: api}
	}

	var renderer listing.Renderer
	if opts.renderListing {
		renderer = ui.NewListingView(p)
	}
	ls := listing.New(api, api.ViewURL, renderer)

	surface := ui.NewSurface(p)
	var display workbench.Display
	if opts.showResults {
		display = surface
	}
	st := workbench.New(workbench.Options{Listing: ls, Display: display, Logger: logger})

	console := ui.NewConsole(in, p)
	console.ClearEcho(in == os.Stdin && out == os.Stdout && terminal.IsInteractive())

	var confirmer dispatch.Confirmer = console
	if opts.confirmer != nil {
		confirmer = opts.confirmer
	}

	notifier := ui.NewNotifier(p, verboseFlag)
	d := dispatch.New(dispatch.Options{
		API:       api,
		Notifier:  notifier,
		Confirmer: confirmer,
		Observer:  ui.NewReporter(p, verboseFlag),
		Logger:    logger,
		Host:      serverurl.Host(cfg.Server.URL),
	})

	return &env{
		api:      api,
		printer:  p,
		console:  console,
		notifier: notifier,
		surface:  surface,
		listing:  ls,
		state:    st,
		dispatch: d,
	}
}

// errReported marks a failure the user has already been shown.
var errReported = errors.New("command failed")

// reportFailure shows err the way the dispatcher shows failed exchanges.
func (e *env) reportFailure(err error, action string) error {
	desc := httperrors.Describe(err, action, serverurl.Host(cfg.Server.URL))
	e.notifier.Notify(dispatch.Notice{
		Severity: dispatch.SeverityError,
		Title:    desc.Title,
		Hints:    desc.Hints,
		Detail:   desc.Detail,
	})
	logger.Warn(action+" failed", "error", err)
	return errReported
}

// outcomeErr maps a dispatch result to the command's exit status. Failures were
// already shown as notices.
func outcomeErr(outcome dispatch.Outcome, err error) error {
	if err != nil || outcome == dispatch.OutcomeFailed {
		if err != nil {
			logger.Debug("command error", "error", err)
		}
		return errReported
	}
	return nil
}

// readFiles loads upload parts from disk. Each part is named after the file's
// base name.
func readFiles(paths []string) ([]backend.File, error) {
	files := make([]backend.File, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, backend.File{Name: filepath.Base(p), Content: b})
	}
	return files, nil
}

// readText reads a whole file as text; "-" means stdin.
func readText(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
