// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dispatch

import (
	"fmt"

	"tablepad/cli/internal/backend"
	"tablepad/cli/internal/workbench"
)

// Command is a user intent. It is one of Upload, Run or Reset.
type Command interface {
	class() workbench.Class
}

// Upload sends files to the backend.
type Upload struct {
	Files []backend.File
}

// Run submits the text held by Source.
type Run struct {
	Source workbench.Source
}

// Reset deletes all backend state after confirmation.
type Reset struct{}

func (Upload) class() workbench.Class { return workbench.ClassUpload }
func (Run) class() workbench.Class    { return workbench.ClassRun }
func (Reset) class() workbench.Class  { return workbench.ClassReset }

// Outcome is how a submitted command ended.
type Outcome int

const (
	// OutcomeApplied means the exchange succeeded and its effects landed.
	OutcomeApplied Outcome = iota
	// OutcomeStale means a newer command of the same class superseded this one,
	// so its result was discarded.
	OutcomeStale
	// OutcomeDeclined means nothing was sent: the reset was not confirmed or
	// there was nothing to upload.
	OutcomeDeclined
	// OutcomeFailed means the exchange failed and the user was notified.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
