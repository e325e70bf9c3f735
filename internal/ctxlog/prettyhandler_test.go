// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	testCases := []struct {
		name    string
		options *slog.HandlerOptions
		opts    []Option
	}{
		{
			name: "nil options",
		},
		{
			name: "custom handler options",
			options: &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			},
		},
		{
			name:    "functional options",
			options: &slog.HandlerOptions{},
			opts:    []Option{WithColour(), WithOutputEmptyAttrs()},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPrettyHandler(tc.options, tc.opts...)
			require.NotNil(t, handler)
			assert.NotNil(t, handler.h)
			assert.NotNil(t, handler.b)
			assert.NotNil(t, handler.m)
		})
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	testCases := []struct {
		name     string
		level    slog.Level
		options  *slog.HandlerOptions
		expected bool
	}{
		{
			name:     "debug record, debug handler",
			level:    slog.LevelDebug,
			options:  &slog.HandlerOptions{Level: slog.LevelDebug},
			expected: true,
		},
		{
			name:     "debug record, info handler",
			level:    slog.LevelDebug,
			options:  &slog.HandlerOptions{Level: slog.LevelInfo},
			expected: false,
		},
		{
			name:     "info record, debug handler",
			level:    slog.LevelInfo,
			options:  &slog.HandlerOptions{Level: slog.LevelDebug},
			expected: true,
		},
		{
			name:     "error record, warn handler",
			level:    slog.LevelError,
			options:  &slog.HandlerOptions{Level: slog.LevelWarn},
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPrettyHandler(tc.options)
			assert.Equal(t, tc.expected, handler.Enabled(context.Background(), tc.level))
		})
	}
}

func TestPrettyHandlerWithAttrsSharesState(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{})

	derived, ok := handler.WithAttrs([]slog.Attr{
		slog.String("command", "echo hello"),
		slog.Int("workers", 4),
	}).(*PrettyHandler)
	require.True(t, ok)

	// The derived handler must serialize through the same buffer and
	// mutex as its parent.
	assert.Same(t, handler.b, derived.b)
	assert.Same(t, handler.m, derived.m)
}

func TestPrettyHandlerWithGroupSharesState(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{})

	derived, ok := handler.WithGroup("scheduler").(*PrettyHandler)
	require.True(t, ok)

	assert.Same(t, handler.b, derived.b)
	assert.Same(t, handler.m, derived.m)
}

func TestPrettyHandlerHandle(t *testing.T) {
	testCases := []struct {
		name     string
		level    slog.Level
		message  string
		attrs    []any
		opts     []Option
		expected []string
	}{
		{
			name:     "info message",
			level:    slog.LevelInfo,
			message:  "archive finalized",
			expected: []string{"INFO:", "archive finalized"},
		},
		{
			name:     "debug message with attributes",
			level:    slog.LevelDebug,
			message:  "running command",
			attrs:    []any{"path", "echo", "args", 2},
			expected: []string{"DEBUG:", "running command", "path", "echo", "2"},
		},
		{
			name:     "warn message",
			level:    slog.LevelWarn,
			message:  "command had no stdout",
			expected: []string{"WARN:", "command had no stdout"},
		},
		{
			name:     "error message",
			level:    slog.LevelError,
			message:  "command failed",
			expected: []string{"ERROR:", "command failed"},
		},
		{
			name:     "empty attrs rendered when enabled",
			level:    slog.LevelInfo,
			message:  "archive finalized",
			opts:     []Option{WithOutputEmptyAttrs()},
			expected: []string{"INFO:", "archive finalized", "{}"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tc.opts...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			record := slog.NewRecord(time.Now(), tc.level, tc.message, 0)
			record.Add(tc.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			output := buf.String()
			for _, want := range tc.expected {
				assert.Contains(t, output, want)
			}

			assert.True(t, len(output) > 0 && output[len(output)-1] == '\n', "output must end with a newline")
		})
	}
}

func TestPrettyHandlerHandleWithReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	replaceAttr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}

		if a.Key == "token" {
			return slog.String("token", "[REDACTED]")
		}

		return a
	}

	handler := NewPrettyHandler(&slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "running command", 0)
	record.Add("token", "hunter2", "command", "echo hello")

	require.NoError(t, handler.Handle(context.Background(), record))

	output := buf.String()
	assert.Contains(t, output, "[REDACTED]")
	assert.NotContains(t, output, "hunter2")
	assert.Contains(t, output, "command")
}

func TestPrettyHandlerComputeAttrsPropagatesError(t *testing.T) {
	handler := &PrettyHandler{
		h: &failingHandler{},
		b: &bytes.Buffer{},
		m: &sync.Mutex{},
	}

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "running command", 0)
	_, err := handler.computeAttrs(context.Background(), record)
	require.Error(t, err)
}

func TestFunctionalOptions(t *testing.T) {
	t.Run("WithDestinationWriter", func(t *testing.T) {
		var buf bytes.Buffer

		handler := NewPrettyHandler(nil, WithDestinationWriter(&buf))
		assert.Same(t, &buf, handler.writer)
	})

	t.Run("WithColour", func(t *testing.T) {
		handler := NewPrettyHandler(nil, WithColour())
		assert.True(t, handler.colour)
	})

	t.Run("WithAutoColour", func(t *testing.T) {
		// The resulting value tracks the environment; only the
		// construction path is exercised here.
		require.NotNil(t, NewPrettyHandler(nil, WithAutoColour()))
	})

	t.Run("WithOutputEmptyAttrs", func(t *testing.T) {
		handler := NewPrettyHandler(nil, WithOutputEmptyAttrs())
		assert.True(t, handler.outputEmptyAttrs)
	})
}

func TestSuppressDefaults(t *testing.T) {
	suppress := suppressDefaults(nil)

	testCases := []struct {
		name     string
		attr     slog.Attr
		expected slog.Attr
	}{
		{
			name: "time key suppressed",
			attr: slog.Time(slog.TimeKey, time.Now()),
		},
		{
			name: "level key suppressed",
			attr: slog.Any(slog.LevelKey, slog.LevelInfo),
		},
		{
			name: "message key suppressed",
			attr: slog.String(slog.MessageKey, "running command"),
		},
		{
			name:     "other keys pass through",
			attr:     slog.String("command", "echo hello"),
			expected: slog.String("command", "echo hello"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := suppress(nil, tc.attr)
			assert.True(t, got.Equal(tc.expected), "got %v, want %v", got, tc.expected)
		})
	}
}

func TestSuppressDefaultsChainsNext(t *testing.T) {
	next := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == "stream" {
			return slog.String("stream", "stderr")
		}

		return a
	}

	suppress := suppressDefaults(next)

	// Built-in keys are still suppressed ahead of the chained function.
	assert.True(t, suppress(nil, slog.Time(slog.TimeKey, time.Now())).Equal(slog.Attr{}))

	got := suppress(nil, slog.String("stream", "stdout"))
	assert.True(t, got.Equal(slog.String("stream", "stderr")))

	passthrough := suppress(nil, slog.String("command", "echo hello"))
	assert.True(t, passthrough.Equal(slog.String("command", "echo hello")))
}

func TestPrettyHandlerHandleWriteError(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}, WithDestinationWriter(&failingWriter{}))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "running command", 0)
	err := handler.Handle(context.Background(), record)

	require.ErrorIs(t, err, ErrIoWrite)
}

func TestTimeFormat(t *testing.T) {
	assert.Equal(t, "[15:04:05.000]", TimeFormat)
}

func TestPrettyHandlerAllLevelsProduceOutput(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}, WithDestinationWriter(&buf), WithColour())

	levels := []slog.Level{
		slog.LevelDebug,
		slog.LevelInfo,
		slog.LevelWarn,
		slog.LevelError,
		slog.LevelError + 2,
	}

	for _, level := range levels {
		buf.Reset()

		record := slog.NewRecord(time.Now(), level, "running command", 0)
		require.NoError(t, handler.Handle(context.Background(), record))
		assert.NotEmpty(t, buf.String(), "no output for level %v", level)
	}
}

type failingHandler struct{}

func (h *failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("inner handler error")
}

func (h *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *failingHandler) WithGroup(string) slog.Handler { return h }

type failingWriter struct{}

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
