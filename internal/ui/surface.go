// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Surface shows the SQL editor and the output surface as boxes.
// It implements workbench.Display.
type Surface struct {
	p *Printer
}

// NewSurface returns a Surface printing to p.
func NewSurface(p *Printer) *Surface {
	return &Surface{p: p}
}

// ShowBuffer prints the editor contents.
func (s *Surface) ShowBuffer(text string) {
	s.p.Print(box("SQL", pterm.NewStyle(pterm.FgCyan, pterm.Bold), text))
}

// ShowOutput prints the output surface. Output the backend flagged with an
// ERROR: prefix is shown under a red title.
func (s *Surface) ShowOutput(text string) {
	style := pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	if strings.HasPrefix(strings.TrimSpace(text), "ERROR:") {
		style = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	}
	s.p.Print(box("Output", style, text))
}

func box(title string, style *pterm.Style, text string) string {
	if strings.TrimSpace(text) == "" {
		text = pterm.NewStyle(pterm.FgGray).Sprint("(empty)")
	}
	return pterm.DefaultBox.
		WithTitle(style.Sprint(title)).
		WithPadding(1).
		Sprint(strings.TrimRight(text, "\n"))
}
