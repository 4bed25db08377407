// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

// Package clog provides leveled, colorized terminal logging for the
// hashmapectl CLI and for the exotic-cell diagnostic hook, grounded on
// the colorization idiom ethereum-go-ethereum's logger uses via
// fatih/color and mattn/go-isatty (see DESIGN.md).
package clog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger writes leveled messages to an io.Writer, colorizing the
// level tag when the writer is a terminal.
type Logger struct {
	out      io.Writer
	colorize bool
}

// New returns a Logger writing to out. Colorization is enabled only
// when out is *os.File and refers to a terminal.
func New(out io.Writer) *Logger {
	colorize := false
	if f, ok := out.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{out: out, colorize: colorize}
}

// Default returns a Logger writing to os.Stderr.
func Default() *Logger {
	return New(os.Stderr)
}

func (l *Logger) tag(level string, c *color.Color) string {
	if !l.colorize {
		return "[" + level + "]"
	}
	return c.Sprintf("[%s]", level)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", l.tag("INFO", color.New(color.FgCyan)), fmt.Sprintf(format, args...))
}

// Warn logs a warning, used by the exotic-cell diagnostic hook.
func (l *Logger) Warn(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", l.tag("WARN", color.New(color.FgYellow)), fmt.Sprintf(format, args...))
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", l.tag("ERROR", color.New(color.FgRed, color.Bold)), fmt.Sprintf(format, args...))
}
