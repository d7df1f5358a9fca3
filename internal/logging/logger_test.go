// SPDX-License-Identifier: MIT
package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/katalvlaran/unfold/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNewWriterNormalisesErrorKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelInfo)
	log.Info("draw failed", "error", errors.New("boom"))
	log.Debug("hidden")

	out := buf.String()
	require.Contains(t, out, "err=boom")
	require.NotContains(t, out, "error=")
	require.NotContains(t, out, "hidden")
}

func TestNewNop(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { logging.NewNop().Error("dropped") })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := logging.ParseLevel(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := logging.ParseLevel("verbose")
	require.ErrorIs(t, err, logging.ErrUnknownLevel)
}
