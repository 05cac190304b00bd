// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dispatch

import (
	"context"
	"time"

	"tablepad/cli/internal/backend"
	"tablepad/cli/internal/workbench"
)

// Severity of a notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Notice is a non-blocking message for the user.
type Notice struct {
	Severity Severity
	Title    string
	Hints    []string
	Detail   string
}

// Notifier shows notices. It must not block on user input.
type Notifier interface {
	Notify(n Notice)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Event describes a finished command.
type Event struct {
	Class     workbench.Class
	Token     uint64
	RequestID string
	Outcome   Outcome
	Elapsed   time.Duration
	Err       error

	// Submitted is the raw text of a Run command.
	Submitted string
	// Result is set for Run commands whose exchange succeeded.
	Result *backend.RunResult
	// Files is set for Upload commands.
	Files []backend.File
}

// Observer is told about every command that issued a request.
type Observer interface {
	Completed(ev Event)
}
