// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"strings"

	"tablepad/cli/internal/dispatch"

	"github.com/pterm/pterm"
)

// Notifier prints dispatch notices. It never waits for input.
type Notifier struct {
	p       *Printer
	verbose bool
}

// NewNotifier returns a Notifier. With verbose, technical details are shown
// under failure notices.
func NewNotifier(p *Printer, verbose bool) *Notifier {
	return &Notifier{p: p, verbose: verbose}
}

// Notify prints the notice.
func (n *Notifier) Notify(x dispatch.Notice) {
	var b strings.Builder
	switch x.Severity {
	case dispatch.SeveritySuccess:
		b.WriteString(pterm.Success.Sprint(x.Title))
	case dispatch.SeverityWarning:
		b.WriteString(pterm.Warning.Sprint(x.Title))
	case dispatch.SeverityError:
		b.WriteString(pterm.Error.Sprint(x.Title))
	default:
		b.WriteString(pterm.Info.Sprint(x.Title))
	}
	for _, h := range x.Hints {
		b.WriteString("\n  • " + h)
	}
	if n.verbose && x.Detail != "" {
		b.WriteString("\n" + pterm.NewStyle(pterm.FgGray).Sprint("  "+x.Detail))
	}
	n.p.Print(b.String())
}
