package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newBuffered(level string) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lg := logger.New(level)
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Info(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered("info")
	lg.Info("processed curves", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "processed curves")
	assert.Contains(t, out, "count=3")
}

func TestLogger_Warn(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered("info")
	lg.Warn("some warning")

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "some warning")
}

func TestLogger_ErrorIncludesMetadata(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered("info")
	lg.Error(zerr.With(zerr.Wrap(os.ErrPermission, "open cache"), "path", "/tmp/cache"))

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "path=/tmp/cache")
}

func TestLogger_LevelFilters(t *testing.T) {
	t.Parallel()

	lg, buf := newBuffered("warn")
	lg.Info("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", logger.ParseLevel("debug").String())
	assert.Equal(t, "WARN", logger.ParseLevel("WARNING").String())
	assert.Equal(t, "ERROR", logger.ParseLevel("error").String())
	assert.Equal(t, "INFO", logger.ParseLevel("bogus").String())
}
