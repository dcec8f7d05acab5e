package clipboard

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCopier struct {
	texts []string
	err   error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.texts = append(copier.texts, text)
	return copier.err
}

func TestCaptureCommitsEverythingWritten(t *testing.T) {
	copier := &recordingCopier{}
	capture := NewCapture(copier)

	_, err := io.WriteString(capture, "first ")
	require.NoError(t, err)
	_, err = capture.Write([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, len("first second"), capture.Len())

	require.NoError(t, capture.Commit())
	assert.Equal(t, []string{"first second"}, copier.texts)
}

func TestCaptureCommitReturnsCopierError(t *testing.T) {
	failure := errors.New("clipboard busy")
	capture := NewCapture(&recordingCopier{err: failure})
	assert.ErrorIs(t, capture.Commit(), failure)
}

func TestCaptureCommitsEmptyText(t *testing.T) {
	copier := &recordingCopier{}
	require.NoError(t, NewCapture(copier).Commit())
	assert.Equal(t, []string{""}, copier.texts)
}
