// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package workbench holds the client state of one tablepad lifecycle: the SQL
// editor, the output surface, the two staging areas and the resource listing.
//
// Results of backend exchanges land through Commit, which applies them only when
// the exchange's token is still the newest one issued for its command class.
// Reinitialize tears everything down and starts over; tokens issued before it are
// never applied.
package workbench

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tablepad/cli/internal/buffer"
	"tablepad/cli/internal/listing"
)

// Class groups commands whose results supersede each other.
type Class int

const (
	ClassUpload Class = iota
	ClassRun
	ClassReset
)

func (c Class) String() string {
	switch c {
	case ClassUpload:
		return "upload"
	case ClassRun:
		return "run"
	case ClassReset:
		return "reset"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Token identifies one dispatched command.
type Token struct {
	Class Class
	Seq   uint64
	epoch uint64
}

// Display renders the editor contents and output surface. Implementations must
// not call back into State.
type Display interface {
	ShowBuffer(text string)
	ShowOutput(text string)
}

// Options configure a State.
type Options struct {
	// Listing is kept across reinitialization; only its contents are dropped.
	Listing *listing.Sync
	// Display is optional.
	Display Display
	Logger  *slog.Logger
}

// State is the explicit client-state handle passed to every operation.
type State struct {
	listing *listing.Sync
	display Display
	log     *slog.Logger

	mu      sync.Mutex
	editor  *buffer.Editor
	output  string
	staging map[Source]string
	epoch   uint64
	seq     uint64
	latest  map[Class]uint64
}

// New returns an uninitialized State. Call Init before use.
func New(opts Options) *State {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &State{
		listing: opts.Listing,
		display: opts.Display,
		log:     log,
		staging: map[Source]string{},
		latest:  map[Class]uint64{},
	}
}

// Init creates the editor with empty text, clears output and staging, and runs the
// first listing refresh. A failed refresh is logged and leaves the listing empty.
func (s *State) Init(ctx context.Context) {
	s.mu.Lock()
	s.editor = buffer.New("")
	s.output = ""
	s.staging = map[Source]string{}
	s.mu.Unlock()

	s.RefreshListing(ctx)
}

// Reinitialize invalidates every outstanding token, drops the editor, output,
// staging and listing, then runs Init.
func (s *State) Reinitialize(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.latest = map[Class]uint64{}
	s.editor = nil
	s.output = ""
	s.staging = nil
	s.mu.Unlock()

	if s.listing != nil {
		s.listing.Clear()
	}
	s.log.Debug("client state torn down", "epoch", epoch)

	s.Init(ctx)
}

// RefreshListing refreshes the resource listing, logging any failure.
func (s *State) RefreshListing(ctx context.Context) {
	if s.listing == nil {
		return
	}
	if err := s.listing.Refresh(ctx); err != nil {
		s.log.Warn("listing refresh failed", "error", err)
	}
}

// Listing returns the listing sync. It may be nil.
func (s *State) Listing() *listing.Sync { return s.listing }

// Editor returns the current editor.
func (s *State) Editor() *buffer.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// Output returns the output surface contents.
func (s *State) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// Stage replaces the text of a staging area. SourceBuffer edits the editor.
func (s *State) Stage(src Source, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch src {
	case SourceRun, SourceGolden:
		if s.staging == nil {
			s.staging = map[Source]string{}
		}
		s.staging[src] = text
	case SourceBuffer:
		s.editor.SetText(text)
	default:
		return fmt.Errorf("unknown source %d", int(src))
	}
	return nil
}

// SourceText resolves the raw text a Run command submits for src.
func (s *State) SourceText(src Source) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lookup := map[Source]func() string{
		SourceRun:    func() string { return s.staging[SourceRun] },
		SourceGolden: func() string { return s.staging[SourceGolden] },
		SourceBuffer: func() string { return s.editor.Text() },
	}
	get, ok := lookup[src]
	if !ok {
		return "", fmt.Errorf("unknown source %d", int(src))
	}
	return get(), nil
}

// Begin issues a new token for class. It supersedes every earlier token of the
// same class.
func (s *State) Begin(class Class) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.latest[class] = s.seq
	return Token{Class: class, Seq: s.seq, epoch: s.epoch}
}

// Current reports whether tok is still the newest token of its class.
func (s *State) Current(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(tok)
}

func (s *State) currentLocked(tok Token) bool {
	return tok.epoch == s.epoch && s.latest[tok.Class] == tok.Seq
}

// Commit runs apply under the state lock if tok is current and reports whether
// it did. A stale token is discarded without running apply. apply may be nil.
func (s *State) Commit(tok Token, apply func(w *Writer)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(tok) {
		return false
	}
	if apply != nil {
		apply(&Writer{s: s})
	}
	return true
}

// Writer mutates the editor and output surface inside Commit.
type Writer struct {
	s *State
}

// SetBuffer replaces the editor text.
func (w *Writer) SetBuffer(text string) {
	w.s.editor.SetText(text)
	if w.s.display != nil {
		w.s.display.ShowBuffer(text)
	}
}

// SetOutput replaces the output surface.
func (w *Writer) SetOutput(text string) {
	w.s.output = text
	if w.s.display != nil {
		w.s.display.ShowOutput(text)
	}
}

// Source selects where a Run command's raw text comes from.
type Source int

const (
	SourceRun Source = iota
	SourceGolden
	SourceBuffer
)

func (s Source) String() string {
	switch s {
	case SourceRun:
		return "run"
	case SourceGolden:
		return "golden"
	case SourceBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// ParseSource maps "run", "golden" and "buffer" to a Source.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "run":
		return SourceRun, nil
	case "golden":
		return SourceGolden, nil
	case "buffer", "editor":
		return SourceBuffer, nil
	}
	return 0, fmt.Errorf("unknown source %q (want run, golden or buffer)", name)
}
