// Package output renders collected files into the aggregate artifact.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/tyemirov/flatcode/internal/types"
)

// StreamRenderer writes collected files one at a time.
// Begin is called once before the first file and Finish once after the last.
type StreamRenderer interface {
	Begin() error
	WriteFile(file types.CollectedFile) error
	Finish() error
}

const invalidFormatMessage = "invalid format value '%s'; expected raw, json, or xml"

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// NewStreamRenderer returns the renderer for format writing into writer.
func NewStreamRenderer(format string, writer io.Writer) (StreamRenderer, error) {
	switch strings.ToLower(format) {
	case "", types.FormatRaw:
		return NewRawStreamRenderer(writer), nil
	case types.FormatJSON:
		return NewJSONStreamRenderer(writer), nil
	case types.FormatXML:
		return NewXMLStreamRenderer(writer), nil
	default:
		return nil, fmt.Errorf(invalidFormatMessage, format)
	}
}
