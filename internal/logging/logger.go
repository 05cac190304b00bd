// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging builds the diagnostic logger and provides helpers that keep
// secrets out of anything shown to the user or written to disk.
//
// Diagnostics are structured (log/slog). They always go to a JSON log file in the
// XDG state directory and, with --verbose, also to the terminal through pterm's
// slog handler so they blend with the rest of the CLI output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tablepad/cli/internal/xdg"

	"github.com/pterm/pterm"
	slogmulti "github.com/samber/slog-multi"
)

// LogFileName is the diagnostic log written into the XDG state directory.
const LogFileName = "tablepad.log"

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Verbose mirrors records to the terminal at debug level.
	Verbose bool
	// Terminal receives terminal records; defaults to os.Stderr.
	Terminal io.Writer
	// File overrides the log file destination (tests); empty means the state dir.
	File string
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the fan-out logger. The returned close function releases the log file.
// When the log file cannot be opened the logger still works on the terminal side.
func New(opts Options) (*slog.Logger, func() error) {
	var handlers []slog.Handler
	closeFn := func() error { return nil }

	if opts.Verbose {
		w := opts.Terminal
		if w == nil {
			w = os.Stderr
		}
		pl := pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug).WithWriter(w)
		handlers = append(handlers, pterm.NewSlogHandler(pl))
	}

	if f, err := openLogFile(opts.File); err == nil {
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: ParseLevel(opts.Level),
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindString {
					a.Value = slog.StringValue(Mask(a.Value.String()))
				}
				return a
			},
		}))
		closeFn = f.Close
	} else if opts.Verbose {
		pterm.Debug.Printfln("diagnostic log disabled: %v", err)
	}

	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closeFn
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn
}

func openLogFile(p string) (*os.File, error) {
	if p == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		p = filepath.Join(dir, LogFileName)
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Discard returns a logger that drops everything; handy for tests and defaults.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
