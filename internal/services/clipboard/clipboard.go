// Package clipboard copies the aggregate output to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the operating system clipboard through
// github.com/atotto/clipboard.
type SystemCopier struct{}

// Copy writes text to the system clipboard.
func (SystemCopier) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Capture is an io.Writer that keeps a copy of everything written to the
// artifact so it can be placed on the clipboard without reading the file back.
type Capture struct {
	copier Copier
	buffer bytes.Buffer
}

// NewCapture returns an empty Capture that commits through copier.
func NewCapture(copier Copier) *Capture {
	return &Capture{copier: copier}
}

// Write appends data to the captured text.
func (capture *Capture) Write(data []byte) (int, error) {
	return capture.buffer.Write(data)
}

// Len returns the number of captured bytes.
func (capture *Capture) Len() int {
	return capture.buffer.Len()
}

// Commit copies the captured text to the clipboard.
func (capture *Capture) Commit() error {
	return capture.copier.Copy(capture.buffer.String())
}

var _ Copier = SystemCopier{}
