// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the progress logger passed to the seed parser and
// the publisher. Loggers are values handed to callers; there is no global
// logging state.
package logging

import (
	"fmt"
	"strings"
)

// Logger reports run progress. Args are alternating key/value pairs.
type Logger interface {
	Info(msg string, args ...any)
	Success(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoOp returns a logger that discards every entry.
func NoOp() Logger { return noop{} }

type noop struct{}

func (noop) Info(string, ...any)    {}
func (noop) Success(string, ...any) {}
func (noop) Warn(string, ...any)    {}
func (noop) Error(string, ...any)   {}

// OrNoOp returns l, or a no-op logger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOp()
	}
	return l
}

// formatArgs renders key/value pairs as " key=value key=value". A trailing
// key without a value is rendered as "key=?".
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(args); i += 2 {
		b.WriteByte(' ')
		if i+1 >= len(args) {
			fmt.Fprintf(&b, "%v=?", args[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", args[i], args[i+1])
	}
	return b.String()
}
