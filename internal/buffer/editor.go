package buffer

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Pos is a rune position in the document.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open selection [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

// IsEmpty reports whether the range selects nothing.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Editor is the document state: text, cursor and selection.
// It is safe for concurrent use.
type Editor struct {
	mu    sync.RWMutex
	lines []string

	cursor Pos
	sel    Range
	hasSel bool

	// version counts every observable change; textVersion only text replacements.
	version     uint64
	textVersion uint64
}

// New constructs the editor seeded with initial.
func New(initial string) *Editor {
	return &Editor{lines: splitLines(initial)}
}

// Text returns a snapshot of the current contents.
func (e *Editor) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.Join(e.lines, "\n")
}

// SetText replaces the entire document with s in one update. The cursor moves to
// the start of the document and any selection is dropped.
func (e *Editor) SetText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = splitLines(s)
	e.cursor = Pos{}
	e.sel = Range{}
	e.hasSel = false
	e.version++
	e.textVersion++
}

// Version increments on every text, cursor or selection change.
func (e *Editor) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// TextVersion increments only when the text is replaced.
func (e *Editor) TextVersion() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.textVersion
}

// Len returns the document length in runes, newlines included.
func (e *Editor) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := len(e.lines) - 1
	for _, l := range e.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// LineCount returns the number of lines; an empty document has one.
func (e *Editor) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.lines)
}

// Lines returns a copy of the document split into lines.
func (e *Editor) Lines() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Editor) Cursor() Pos {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// SetCursor moves the cursor, clamped to the document.
func (e *Editor) SetCursor(p Pos) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.clamp(p)
	if next == e.cursor {
		return
	}
	e.cursor = next
	e.version++
}

// Selection returns the normalized selection, if any.
func (e *Editor) Selection() (Range, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.hasSel {
		return Range{}, false
	}
	return e.sel, true
}

// Select sets the selection. Endpoints are clamped and ordered; an empty range
// clears the selection.
func (e *Editor) Select(r Range) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r = Range{Start: e.clamp(r.Start), End: e.clamp(r.End)}
	if less(r.End, r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	if r.IsEmpty() {
		if e.hasSel {
			e.hasSel = false
			e.sel = Range{}
			e.version++
		}
		return
	}
	if e.hasSel && e.sel == r {
		return
	}
	e.sel = r
	e.hasSel = true
	e.version++
}

// SelectedText returns the selected text, or "" without a selection.
func (e *Editor) SelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.hasSel {
		return ""
	}
	var sb strings.Builder
	for row := e.sel.Start.Row; row <= e.sel.End.Row; row++ {
		line := []rune(e.lines[row])
		from, to := 0, len(line)
		if row == e.sel.Start.Row {
			from = e.sel.Start.Col
		}
		if row == e.sel.End.Row {
			to = e.sel.End.Col
		}
		if row > e.sel.Start.Row {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line[from:to]))
	}
	return sb.String()
}

func (e *Editor) clamp(p Pos) Pos {
	if p.Row < 0 {
		return Pos{}
	}
	if p.Row >= len(e.lines) {
		last := len(e.lines) - 1
		return Pos{Row: last, Col: utf8.RuneCountInString(e.lines[last])}
	}
	n := utf8.RuneCountInString(e.lines[p.Row])
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > n {
		p.Col = n
	}
	return p
}

func less(a, b Pos) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
