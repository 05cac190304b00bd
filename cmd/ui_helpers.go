// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"tablepad/cli/internal/backend"
	"tablepad/cli/internal/terminal"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startInlineSpinner animates frames followed by text on a single line of w
// until the returned function is called. Stopping clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// spin shows a spinner on stderr while fn runs, when stderr is a terminal.
func spin(text string, fn func()) {
	if !terminal.IsInteractive() {
		fn()
		return
	}
	stop := startInlineSpinner(os.Stderr, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	fn()
}

// spinningAPI shows a spinner for the duration of each backend exchange. Output
// produced from results happens after the call returns, so it never interleaves
// with the spinner line.
type spinningAPI struct {
	backend.API
}

func (s spinningAPI) Upload(ctx context.Context, files []backend.File) (err error) {
	spin("Uploading", func() { err = s.API.Upload(ctx, files) })
	return err
}

func (s spinningAPI) Run(ctx context.Context, raw string) (res backend.RunResult, err error) {
	spin("Running", func() { res, err = s.API.Run(ctx, raw) })
	return res, err
}

func (s spinningAPI) Reset(ctx context.Context) (err error) {
	spin("Resetting", func() { err = s.API.Reset(ctx) })
	return err
}

func (s spinningAPI) ListResources(ctx context.Context) (entries []backend.ResourceEntry, err error) {
	spin("Loading tables", func() { entries, err = s.API.ListResources(ctx) })
	return entries, err
}

func (s spinningAPI) FetchResource(ctx context.Context, file string) (body string, err error) {
	spin("Fetching "+file, func() { body, err = s.API.FetchResource(ctx, file) })
	return body, err
}
