// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"fmt"
	"time"

	"tablepad/cli/internal/dispatch"
	"tablepad/cli/internal/workbench"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Reporter prints a status line for every finished command. In verbose mode a
// run whose SQL came back rewritten also gets a diff against what was sent.
// It implements dispatch.Observer.
type Reporter struct {
	p       *Printer
	verbose bool
}

// NewReporter returns a Reporter printing to p.
func NewReporter(p *Printer, verbose bool) *Reporter {
	return &Reporter{p: p, verbose: verbose}
}

// Completed reports ev.
func (r *Reporter) Completed(ev dispatch.Event) {
	gray := pterm.NewStyle(pterm.FgGray)
	switch ev.Outcome {
	case dispatch.OutcomeStale:
		r.p.Print(gray.Sprintf("%s #%d finished after a newer %s; result discarded", ev.Class, ev.Token, ev.Class))
		return
	case dispatch.OutcomeApplied:
		line := fmt.Sprintf("%s #%d done in %s", ev.Class, ev.Token, FormatElapsed(ev.Elapsed))
		if ev.Result != nil {
			line += ", sql " + DiffSummary(ev.Submitted, ev.Result.SQL)
		}
		r.p.Print(gray.Sprint(line))
	case dispatch.OutcomeFailed:
		r.p.Print(gray.Sprintf("%s #%d failed after %s", ev.Class, ev.Token, FormatElapsed(ev.Elapsed)))
	}

	if r.verbose && ev.Class == workbench.ClassRun && ev.Result != nil && ev.Result.SQL != ev.Submitted {
		r.p.Print(gray.Sprint("rewritten by server:") + "\n" + Diff(ev.Submitted, ev.Result.SQL))
	}
}

// FormatElapsed renders d for humans, to millisecond precision.
func FormatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return "<1 millisecond"
	}
	return durafmt.Parse(d.Round(time.Millisecond)).String()
}

// Diff returns a colored character diff from a to b.
func Diff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// DiffSummary counts inserted and deleted characters between a and b.
func DiffSummary(a, b string) string {
	dmp := diffmatchpatch.New()
	var ins, del int
	for _, d := range dmp.DiffMain(a, b, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			ins += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			del += len([]rune(d.Text))
		}
	}
	if ins == 0 && del == 0 {
		return "unchanged"
	}
	return fmt.Sprintf("+%d -%d", ins, del)
}
