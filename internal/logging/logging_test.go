package logging

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	require.NoError(t, level.Info(logger).Log("msg", "hidden"))
	require.NoError(t, level.Warn(logger).Log("msg", "shown", "input", "a.json"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "level=warn")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "input=a.json")
	require.Contains(t, out, "ts=")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "trace")
	require.Error(t, err)
}
