// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package ui renders tablepad state in the terminal with pterm and reads user
// input line by line.
//
// Commands may finish in background goroutines while the user is typing, so all
// output goes through a Printer that serializes writes.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Printer serializes terminal writes.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter wraps w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Print writes s followed by a newline unless s already ends in one.
func (p *Printer) Print(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprint(p.w, s)
}

// Printf formats and prints a line.
func (p *Printer) Printf(format string, args ...any) {
	p.Print(fmt.Sprintf(format, args...))
}
