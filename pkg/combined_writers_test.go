package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	stdout := &strings.Builder{}
	stdout.WriteString("already-here")
	logFile := &strings.Builder{}

	cw := NewCombinedWriter(stdout, logFile)
	require.Len(t, cw.Writers, 2)

	line1 := "level=info msg=\"reminder scheduler started\"\n"
	line2 := "level=debug msg=\"running cycle reminders\"\n"
	n, err := cw.Write([]byte(line1))
	require.NoError(t, err)
	assert.Equal(t, 2*len(line1), n)
	n, err = cw.Write([]byte(line2))
	require.NoError(t, err)
	assert.Equal(t, 2*len(line2), n)

	assert.Equal(t, "already-here"+line1+line2, stdout.String())
	assert.Equal(t, line1+line2, logFile.String())
}

func TestCombinedWriter_Write_WithErrors(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{msg: "disk full"}, sb, &faultyWriter{msg: "closed"})

	line := "level=error msg=\"persist notifications\"\n"
	n, err := cw.Write([]byte(line))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "closed")

	// the healthy writer still got the line
	assert.Equal(t, len(line), n)
	assert.Equal(t, line, sb.String())
}

type faultyWriter struct {
	msg string
}

func (fw *faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New(fw.msg)
}
