// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	symbolInfo    = "ℹ"
	symbolSuccess = "✓"
	symbolWarn    = "⚠"
	symbolError   = "✗"
)

// Console writes one symbol-prefixed line per entry:
//
//	ℹ Creating page: Home
//	✓ Created page: Home id=4
type Console struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsole returns a console logger writing to w, or to stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) Info(msg string, args ...any)    { c.write(symbolInfo, msg, args) }
func (c *Console) Success(msg string, args ...any) { c.write(symbolSuccess, msg, args) }
func (c *Console) Warn(msg string, args ...any)    { c.write(symbolWarn, msg, args) }
func (c *Console) Error(msg string, args ...any)   { c.write(symbolError, msg, args) }

func (c *Console) write(symbol, msg string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s%s\n", symbol, msg, formatArgs(args))
}
