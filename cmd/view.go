// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"tablepad/cli/internal/listing"
	"tablepad/cli/internal/ui"

	"github.com/agnivade/levenshtein"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var viewPrint bool

// viewCmd opens a table's viewer page, or prints it as text.
var viewCmd = &cobra.Command{
	Use:   "view TABLE",
	Short: "Open a table's viewer page",
	Long: `View opens the viewer page of a table in your browser. With --print the
page is fetched and printed as a text table instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := newEnv(envOptions{spinner: true})
		if err := e.listing.Refresh(ctx); err != nil {
			return e.reportFailure(err, "listing tables")
		}
		return e.view(ctx, args[0], viewPrint)
	},
}

// view resolves table in the current listing and opens or prints it.
func (e *env) view(ctx context.Context, table string, printTable bool) error {
	link, ok := e.listing.Lookup(table)
	if !ok {
		msg := fmt.Sprintf("Unknown table %q", table)
		if s := suggest(table, e.listing.Links()); s != "" {
			msg += fmt.Sprintf(". Did you mean %q?", s)
		}
		e.printer.Print(pterm.Warning.Sprint(msg))
		return errReported
	}

	if !printTable {
		e.printer.Print(pterm.Info.Sprint("Opening " + link.Href))
		openBrowser(link.Href)
		return nil
	}

	body, err := e.api.FetchResource(ctx, link.File)
	if err != nil {
		return e.reportFailure(err, "fetching "+link.File)
	}
	out, err := ui.RenderResource(body)
	if err != nil {
		logger.Debug("viewer page is not tabular", "file", link.File, "error", err)
		out = body
	}
	e.printer.Print(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(link.Label) + "\n" + out)
	return nil
}

// suggest returns the label closest to name, if any is close enough to be a typo.
func suggest(name string, links []listing.Link) string {
	best, bestDist := "", -1
	for _, l := range links {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(l.Label))
		if bestDist < 0 || d < bestDist {
			best, bestDist = l.Label, d
		}
	}
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

// openBrowser attempts to open the provided URL in the user's default browser.
// It uses platform-specific commands to launch the default browser:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open
//   - Linux/Unix: xdg-open
//
// Errors are ignored; the URL is always printed as well.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVarP(&viewPrint, "print", "p", false, "Print the table instead of opening a browser")
}
