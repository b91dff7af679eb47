package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	return New(l, false), &buf
}

func TestLoggerCategory(t *testing.T) {
	t.Parallel()

	l, buf := newTestLogger()
	l.Debugf("Supervisor:spawn", "pid %d", 42)

	out := buf.String()
	assert.Contains(t, out, "Supervisor:spawn")
	assert.Contains(t, out, "pid 42")
}

func TestLoggerCategoryFilter(t *testing.T) {
	t.Parallel()

	l, buf := newTestLogger()
	require.NoError(t, l.SetCategoryFilter("^Driver:"))

	l.Debugf("Supervisor:spawn", "filtered out")
	l.Debugf("Driver:StartSession", "kept")

	out := buf.String()
	assert.NotContains(t, out, "filtered out")
	assert.Contains(t, out, "kept")

	require.Error(t, l.SetCategoryFilter("("))
}

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	l, _ := newTestLogger()
	assert.True(t, l.DebugMode())

	require.NoError(t, l.SetLevel("info"))
	assert.False(t, l.DebugMode())

	require.Error(t, l.SetLevel("nope"))
}

func TestNullLoggerDiscards(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		l := NewNullLogger()
		l.Infof("category", "dropped")
		l.Warnf("category", "dropped")
		l.Errorf("category", "dropped")
	})
}
