// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal puts back the global logger and level after a test changes them.
func restoreGlobal(t *testing.T) {
	t.Helper()
	original := Logger()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(original)
		zerolog.SetGlobalLevel(level)
	})
}

func TestInit(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Output: &buf})
	Debug().Str("source", "clicks").Msg("chunk read")

	out := buf.String()
	for _, want := range []string{`"level":"debug"`, `"source":"clicks"`, `"message":"chunk read"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_ZeroConfigIsInfo(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Output: &buf})
	Debug().Msg("hidden")
	Info().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug event written at default level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("info event missing: %s", buf.String())
	}
}

func TestInit_Caller(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Caller: true, Output: &buf})
	Info().Msg("with caller")

	if !strings.Contains(buf.String(), `"caller":"`) {
		t.Errorf("caller field missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name    string
		logFunc func()
		level   string
	}{
		{"Debug", func() { Debug().Msg("debug msg") }, "debug"},
		{"Info", func() { Info().Msg("info msg") }, "info"},
		{"Warn", func() { Warn().Msg("warn msg") }, "warn"},
		{"Error", func() { Error().Err(errors.New("boom")).Msg("error msg") }, "error"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.logFunc()
		if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
			t.Errorf("%s: expected level %q in output: %s", tt.name, tt.level, buf.String())
		}
	}
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("error field missing: %s", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console test")

	output := buf.String()
	if strings.Contains(output, `"message"`) {
		t.Errorf("console output should not be JSON: %s", output)
	}
	if !strings.Contains(output, "console test") {
		t.Errorf("expected message in console output: %s", output)
	}
}
