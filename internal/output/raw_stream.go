package output

import (
	"io"
	"strings"

	"github.com/tyemirov/flatcode/internal/types"
)

const (
	separatorWidth  = 80
	filePathLabel   = "FILE PATH: "
	lineTerminator  = "\n"
	separatorSymbol = "="
)

var separatorLine = strings.Repeat(separatorSymbol, separatorWidth)

type rawStreamRenderer struct {
	writer io.Writer
}

// NewRawStreamRenderer writes each file as a separator-framed block:
//
//	<blank line>
//	================================================================================
//	FILE PATH: src/a.ts
//	================================================================================
//	<blank line>
//	<content>
func NewRawStreamRenderer(writer io.Writer) StreamRenderer {
	return &rawStreamRenderer{writer: writer}
}

func (renderer *rawStreamRenderer) Begin() error {
	return nil
}

func (renderer *rawStreamRenderer) WriteFile(file types.CollectedFile) error {
	var builder strings.Builder
	builder.Grow(len(file.Content) + 2*separatorWidth + len(file.RelativePath) + 32)
	builder.WriteString(lineTerminator)
	builder.WriteString(separatorLine)
	builder.WriteString(lineTerminator)
	builder.WriteString(filePathLabel)
	builder.WriteString(file.RelativePath)
	builder.WriteString(lineTerminator)
	builder.WriteString(separatorLine)
	builder.WriteString(lineTerminator)
	builder.WriteString(lineTerminator)
	builder.WriteString(file.Content)
	builder.WriteString(lineTerminator)
	_, err := io.WriteString(renderer.writer, builder.String())
	return err
}

func (renderer *rawStreamRenderer) Finish() error {
	return nil
}
