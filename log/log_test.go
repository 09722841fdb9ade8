// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerFormatsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(&buf)
	if err := logger.Log(LevelInfo, "msg", "hello", "count", 3); err != nil {
		t.Fatalf("Log() failed, reason: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "INFO") {
		t.Fatalf("Log() output = %q, want it to start with level name", got)
	}
	if !strings.Contains(got, "msg=hello") || !strings.Contains(got, "count=3") {
		t.Fatalf("Log() output = %q, want key=value pairs", got)
	}
}

func TestStdLoggerOddKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(&buf)
	if err := logger.Log(LevelWarn, "msg"); err != nil {
		t.Fatalf("Log() failed, reason: %v", err)
	}
	if !strings.Contains(buf.String(), "MISSING_VALUE") {
		t.Fatalf("Log() output = %q, want MISSING_VALUE padding for an odd keyval count", buf.String())
	}
}

func TestFilterDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	filtered := NewFilter(NewStdLogger(&buf), FilterLevel(LevelWarn))
	filtered.Log(LevelDebug, "msg", "should not appear")
	if buf.Len() != 0 {
		t.Fatalf("buf = %q, want empty (LevelDebug dropped below LevelWarn)", buf.String())
	}
	filtered.Log(LevelError, "msg", "should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("buf = %q, want it to contain the LevelError message", buf.String())
	}
}

func TestHelperNilSafe(t *testing.T) {
	var h *Helper
	h.Debugf("this must not panic: %d", 1) // nil receiver, no logger configured
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Fatalf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
