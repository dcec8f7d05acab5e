package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tyemirov/flatcode/internal/types"
)

type jsonStreamRenderer struct {
	writer  io.Writer
	written int
}

// NewJSONStreamRenderer writes a JSON array of {"path","content"} objects,
// one element per line, without buffering the whole document.
func NewJSONStreamRenderer(writer io.Writer) StreamRenderer {
	return &jsonStreamRenderer{writer: writer}
}

func (renderer *jsonStreamRenderer) Begin() error {
	_, err := io.WriteString(renderer.writer, "[")
	return err
}

func (renderer *jsonStreamRenderer) WriteFile(file types.CollectedFile) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(file); err != nil {
		return err
	}
	prefix := ",\n  "
	if renderer.written == 0 {
		prefix = "\n  "
	}
	if _, err := io.WriteString(renderer.writer, prefix); err != nil {
		return err
	}
	if _, err := renderer.writer.Write(bytes.TrimRight(buffer.Bytes(), "\n")); err != nil {
		return err
	}
	renderer.written++
	return nil
}

func (renderer *jsonStreamRenderer) Finish() error {
	closing := "]\n"
	if renderer.written > 0 {
		closing = "\n]\n"
	}
	_, err := io.WriteString(renderer.writer, closing)
	return err
}
