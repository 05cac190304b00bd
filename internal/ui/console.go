// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"tablepad/cli/internal/terminal"

	"github.com/pterm/pterm"
)

// BlockTerminator ends a multi-line block typed by the user.
const BlockTerminator = "."

// ErrNoInput is returned when input is not available for a prompt.
var ErrNoInput = errors.New("no interactive input available")

// Console reads user input line by line. One Console owns stdin for the
// lifetime of a command.
type Console struct {
	in        *bufio.Reader
	p         *Printer
	clearEcho bool
}

// NewConsole reads from in and prints prompts through p. A nil in makes every
// prompt fail with ErrNoInput.
func NewConsole(in io.Reader, p *Printer) *Console {
	c := &Console{p: p}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

// ClearEcho makes Confirm erase the typed answer from the terminal. Only enable
// it when stdin and stdout are a terminal.
func (c *Console) ClearEcho(enabled bool) {
	c.clearEcho = enabled
}

// ReadLine prints prompt and returns the next line without its line ending.
// io.EOF is returned once input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	if c.in == nil {
		return "", ErrNoInput
	}
	if prompt != "" {
		c.p.mu.Lock()
		_, _ = io.WriteString(c.p.w, prompt)
		c.p.mu.Unlock()
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadBlock collects lines until a line holding only BlockTerminator. current
// is shown first so the user sees what they are replacing.
func (c *Console) ReadBlock(title, current string) (string, error) {
	c.p.Print(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(title))
	if strings.TrimSpace(current) != "" {
		c.p.Print(pterm.NewStyle(pterm.FgGray).Sprint(current))
	}
	c.p.Print(pterm.NewStyle(pterm.FgGray).Sprintf("(finish with a line containing only %q)", BlockTerminator))

	var lines []string
	for {
		line, err := c.ReadLine("")
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if line == BlockTerminator {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Confirm asks a yes/no question; only "y" or "yes" confirms. It implements
// dispatch.Confirmer.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.p.Print(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint(prompt))
	c.p.Print("  • Type " + pterm.NewStyle(pterm.FgRed).Sprint("yes") + " to delete everything")
	c.p.Print("  • Press " + pterm.NewStyle(pterm.FgGreen).Sprint("Enter") + " or type " + pterm.NewStyle(pterm.FgGreen).Sprint("no") + " to keep it")

	const answerPrompt = "> "
	ans, err := c.ReadLine(answerPrompt)
	if err != nil {
		return false, err
	}
	if c.clearEcho {
		c.p.mu.Lock()
		terminal.ClearPreviousLines(c.p.w, len(answerPrompt)+len(ans))
		c.p.mu.Unlock()
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes":
		return true, nil
	default:
		c.p.Print(pterm.NewStyle(pterm.FgGray).Sprint("Cancelled, nothing was deleted."))
		return false, nil
	}
}
