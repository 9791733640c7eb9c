// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// GoLoggerConfig selects the go-logger output.
type GoLoggerConfig struct {
	// Level is trace, debug, info, warn, error, or fatal. Empty keeps the
	// library default.
	Level string

	// Format is json, console, or pretty.
	Format string

	// Name scopes the logger (e.g. "cms-seeder.publish").
	Name string
}

// NewGoLogger builds a Logger backed by go-logger.
func NewGoLogger(cfg GoLoggerConfig) (Logger, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	root := glog.NewLogger(options...)
	var inner glog.Logger = root
	if name := strings.TrimSpace(cfg.Name); name != "" {
		inner = root.GetLogger(name)
	}
	return Wrap(inner), nil
}

// Wrap adapts a go-logger Logger. Success entries are logged at info level
// with an outcome=success field.
func Wrap(inner glog.Logger) Logger {
	if inner == nil {
		return NoOp()
	}
	return &goLogger{inner: inner}
}

type goLogger struct {
	inner glog.Logger
}

func (l *goLogger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

func (l *goLogger) Success(msg string, args ...any) {
	l.inner.Info(msg, append(args, "outcome", "success")...)
}

func (l *goLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *goLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
