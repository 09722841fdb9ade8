// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log provides the small structured-logging seam the classfile
// parser uses, through Options.Logger, to trace parse steps and report
// non-fatal parse anomalies.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is a log severity.
type Level int8

// Severity levels, most to least verbose.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String renders the level name, upper-cased, for log line prefixes.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the one method every backend implements: emit a leveled log
// line carrying alternating key/value pairs.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes tab-separated key/value pairs to an io.Writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes to w, one line per call.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

// Log implements Logger.
func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "MISSING_VALUE")
	}
	_, err := fmt.Fprint(l.w, level.String())
	if err != nil {
		return err
	}
	for i := 0; i < len(keyvals); i += 2 {
		if _, err := fmt.Fprintf(l.w, " %v=%v", keyvals[i], keyvals[i+1]); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(l.w)
	return err
}

// filter wraps a Logger and drops any call below a minimum level.
type filter struct {
	logger Logger
	level  Level
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level that passes through the filter.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// NewFilter wraps logger so that only calls at or above the configured
// level (LevelError by default) reach it.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{logger: logger, level: LevelError}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Log implements Logger, dropping calls below the configured level.
func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger with Debugf/Infof/Warnf/Errorf/Fatalf.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, "msg", fmt.Sprintf(format, args...))
}

// Debugf logs a step-tracing message (pool/field/method/attribute counts).
func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }

// Infof logs an informational message.
func (h *Helper) Infof(format string, args ...interface{}) { h.log(LevelInfo, format, args...) }

// Warnf logs a non-fatal structural anomaly, such as an overwritten
// singleton attribute or a malformed descriptor.
func (h *Helper) Warnf(format string, args ...interface{}) { h.log(LevelWarn, format, args...) }

// Errorf logs an error that is also being returned to the caller as a
// value - never the sole signal of failure.
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }

// Fatalf logs at LevelFatal without exiting the process; the classfile
// reader never terminates the process itself.
func (h *Helper) Fatalf(format string, args ...interface{}) { h.log(LevelFatal, format, args...) }

// DefaultLogger is a stdout logger filtered to LevelError, the default
// used when Options.Logger is nil.
func DefaultLogger() Logger {
	return NewFilter(NewStdLogger(os.Stdout), FilterLevel(LevelError))
}
