package output

import (
	"encoding/xml"
	"io"

	"github.com/tyemirov/flatcode/internal/types"
)

const xmlElementIndent = "  "

type xmlFileElement struct {
	XMLName xml.Name `xml:"file"`
	Path    string   `xml:"path,attr"`
	Content string   `xml:",cdata"`
}

type xmlStreamRenderer struct {
	writer  io.Writer
	encoder *xml.Encoder
}

// NewXMLStreamRenderer writes <files><file path="...">content</file></files>
// with file content wrapped in CDATA sections.
func NewXMLStreamRenderer(writer io.Writer) StreamRenderer {
	return &xmlStreamRenderer{writer: writer}
}

func (renderer *xmlStreamRenderer) Begin() error {
	if _, err := io.WriteString(renderer.writer, xml.Header); err != nil {
		return err
	}
	if _, err := io.WriteString(renderer.writer, "<files>\n"); err != nil {
		return err
	}
	renderer.encoder = xml.NewEncoder(renderer.writer)
	return nil
}

func (renderer *xmlStreamRenderer) WriteFile(file types.CollectedFile) error {
	element := xmlFileElement{Path: file.RelativePath, Content: file.Content}
	if _, err := io.WriteString(renderer.writer, xmlElementIndent); err != nil {
		return err
	}
	if err := renderer.encoder.Encode(element); err != nil {
		return err
	}
	if err := renderer.encoder.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(renderer.writer, "\n")
	return err
}

func (renderer *xmlStreamRenderer) Finish() error {
	_, err := io.WriteString(renderer.writer, "</files>\n")
	return err
}
