// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"strings"
	"sync"
)

// Level names the severity of a recorded entry.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Entry is one recorded log call.
type Entry struct {
	Level   Level
	Message string
	Args    []any
}

// Recorder keeps every entry in memory. Tests use it to run the parser and
// publisher silently and assert on warnings.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Info(msg string, args ...any)    { r.add(LevelInfo, msg, args) }
func (r *Recorder) Success(msg string, args ...any) { r.add(LevelSuccess, msg, args) }
func (r *Recorder) Warn(msg string, args ...any)    { r.add(LevelWarn, msg, args) }
func (r *Recorder) Error(msg string, args ...any)   { r.add(LevelError, msg, args) }

func (r *Recorder) add(level Level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Args: append([]any(nil), args...)})
}

// Entries returns a copy of all entries in call order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether an entry at level has a message containing substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
