// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dispatch turns user intents into backend exchanges and routes their
// results into the client state.
//
// Every exchange is tagged with a workbench token. A result whose token has been
// superseded by a newer command of the same class, or by a reset, is dropped
// without touching the editor, the output surface or the listing. Failures never
// change state; they reach the user as a Notice.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tablepad/cli/internal/backend"
	"tablepad/cli/internal/httperrors"
	"tablepad/cli/internal/workbench"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ResetPrompt is the confirmation question asked before a reset.
const ResetPrompt = "Delete ALL CSV files?"

// Options configure a Dispatcher.
type Options struct {
	API       backend.API
	Notifier  Notifier
	Confirmer Confirmer
	// Observer is optional.
	Observer Observer
	Logger   *slog.Logger
	// Host names the backend in notices.
	Host string
}

// Dispatcher executes commands against the backend.
// It is safe for concurrent use; overlapping commands are allowed.
type Dispatcher struct {
	api       backend.API
	notifier  Notifier
	confirmer Confirmer
	observer  Observer
	log       *slog.Logger
	host      string
	now       func() time.Time
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		api:       opts.API,
		notifier:  opts.Notifier,
		confirmer: opts.Confirmer,
		observer:  opts.Observer,
		log:       log,
		host:      opts.Host,
		now:       time.Now,
	}
}

// Submit routes cmd to its operation.
func (d *Dispatcher) Submit(ctx context.Context, st *workbench.State, cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case Upload:
		return d.SubmitUpload(ctx, st, c.Files)
	case Run:
		return d.SubmitRun(ctx, st, c.Source)
	case Reset:
		return d.SubmitReset(ctx, st)
	default:
		return OutcomeFailed, fmt.Errorf("unsupported command %T", cmd)
	}
}

// SubmitUpload sends files in one multipart request and refreshes the listing
// afterwards, whether or not the upload succeeded.
func (d *Dispatcher) SubmitUpload(ctx context.Context, st *workbench.State, files []backend.File) (Outcome, error) {
	if len(files) == 0 {
		d.notify(Notice{Severity: SeverityWarning, Title: "No files to upload"})
		return OutcomeDeclined, nil
	}

	ex := d.begin(ctx, st, workbench.ClassUpload)
	err := d.api.Upload(ex.ctx, files)

	ev := Event{Files: files, Err: err}
	if err != nil {
		if !st.Current(ex.tok) {
			return d.finish(ex, ev, OutcomeStale), nil
		}
		d.notifyFailure(err, "uploading files")
		st.RefreshListing(ctx)
		return d.finish(ex, ev, OutcomeFailed), err
	}

	if !st.Commit(ex.tok, nil) {
		return d.finish(ex, ev, OutcomeStale), nil
	}
	d.notify(Notice{
		Severity: SeveritySuccess,
		Title:    fmt.Sprintf("Uploaded %s (%s)", plural(len(files), "file"), humanize.Bytes(totalSize(files))),
	})
	st.RefreshListing(ctx)
	return d.finish(ex, ev, OutcomeApplied), nil
}

// SubmitRun submits the text held by src. On success the editor receives the
// returned sql and the output surface the returned output, unless a newer run
// was issued meanwhile. On failure both stay as they were.
func (d *Dispatcher) SubmitRun(ctx context.Context, st *workbench.State, src workbench.Source) (Outcome, error) {
	raw, err := st.SourceText(src)
	if err != nil {
		return OutcomeFailed, err
	}

	ex := d.begin(ctx, st, workbench.ClassRun)
	res, err := d.api.Run(ex.ctx, raw)

	ev := Event{Submitted: raw, Err: err}
	if err != nil {
		if !st.Current(ex.tok) {
			return d.finish(ex, ev, OutcomeStale), nil
		}
		d.notifyFailure(err, "running "+src.String()+" text")
		st.RefreshListing(ctx)
		return d.finish(ex, ev, OutcomeFailed), err
	}
	ev.Result = &res

	applied := st.Commit(ex.tok, func(w *workbench.Writer) {
		w.SetBuffer(res.SQL)
		w.SetOutput(res.Output)
	})
	if !applied {
		return d.finish(ex, ev, OutcomeStale), nil
	}
	st.RefreshListing(ctx)
	return d.finish(ex, ev, OutcomeApplied), nil
}

// SubmitReset asks for confirmation, then deletes all backend state and
// reinitializes the client. Declining, or a failed prompt, sends nothing and
// changes nothing.
func (d *Dispatcher) SubmitReset(ctx context.Context, st *workbench.State) (Outcome, error) {
	ok, err := d.confirm(ctx)
	if err != nil {
		d.log.Debug("reset confirmation failed", "error", err)
	}
	if err != nil || !ok {
		d.log.Info("reset declined")
		return OutcomeDeclined, nil
	}

	ex := d.begin(ctx, st, workbench.ClassReset)
	err = d.api.Reset(ex.ctx)

	ev := Event{Err: err}
	if err != nil {
		if !st.Current(ex.tok) {
			return d.finish(ex, ev, OutcomeStale), nil
		}
		d.notifyFailure(err, "resetting")
		return d.finish(ex, ev, OutcomeFailed), err
	}

	if !st.Commit(ex.tok, nil) {
		return d.finish(ex, ev, OutcomeStale), nil
	}
	st.Reinitialize(ctx)
	d.notify(Notice{Severity: SeveritySuccess, Title: "All CSV files deleted"})
	return d.finish(ex, ev, OutcomeApplied), nil
}

// exchange is one in-flight backend request.
type exchange struct {
	ctx       context.Context
	tok       workbench.Token
	requestID string
	started   time.Time
}

func (d *Dispatcher) begin(ctx context.Context, st *workbench.State, class workbench.Class) exchange {
	id := uuid.NewString()
	tok := st.Begin(class)
	d.log.Debug("command submitted", "class", class.String(), "token", tok.Seq, "request_id", id)
	return exchange{
		ctx:       backend.WithRequestID(ctx, id),
		tok:       tok,
		requestID: id,
		started:   d.now(),
	}
}

func (d *Dispatcher) finish(ex exchange, ev Event, outcome Outcome) Outcome {
	ev.Class = ex.tok.Class
	ev.Token = ex.tok.Seq
	ev.RequestID = ex.requestID
	ev.Outcome = outcome
	ev.Elapsed = d.now().Sub(ex.started)

	attrs := []any{
		"class", ev.Class.String(),
		"token", ev.Token,
		"request_id", ev.RequestID,
		"outcome", outcome.String(),
		"elapsed", ev.Elapsed,
	}
	if ev.Err != nil {
		d.log.Warn("command finished", append(attrs, "error", ev.Err)...)
	} else {
		d.log.Info("command finished", attrs...)
	}

	if d.observer != nil {
		d.observer.Completed(ev)
	}
	return outcome
}

func (d *Dispatcher) confirm(ctx context.Context) (bool, error) {
	if d.confirmer == nil {
		return false, fmt.Errorf("no confirmer configured")
	}
	return d.confirmer.Confirm(ctx, ResetPrompt)
}

func (d *Dispatcher) notify(n Notice) {
	if d.notifier != nil {
		d.notifier.Notify(n)
	}
}

// notifyFailure reports err. Malformed responses get the same severity as
// server failures.
func (d *Dispatcher) notifyFailure(err error, action string) {
	desc := httperrors.Describe(err, action, d.host)
	d.notify(Notice{
		Severity: SeverityError,
		Title:    desc.Title,
		Hints:    desc.Hints,
		Detail:   desc.Detail,
	})
}

func totalSize(files []backend.File) uint64 {
	var n uint64
	for _, f := range files {
		n += uint64(len(f.Content))
	}
	return n
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
