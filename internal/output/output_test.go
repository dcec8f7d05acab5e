package output_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/flatcode/internal/output"
	"github.com/tyemirov/flatcode/internal/types"
)

var sampleFiles = []types.CollectedFile{
	{RelativePath: "src/a.ts", Content: "export const a = 1;"},
	{RelativePath: "styles/site.css", Content: "body { color: <red>; }\n"},
}

func render(t *testing.T, format string, files []types.CollectedFile) string {
	t.Helper()
	var buffer bytes.Buffer
	renderer, err := output.NewStreamRenderer(format, &buffer)
	require.NoError(t, err)
	require.NoError(t, renderer.Begin())
	for _, file := range files {
		require.NoError(t, renderer.WriteFile(file))
	}
	require.NoError(t, renderer.Finish())
	return buffer.String()
}

func TestRawStreamRendererWritesHeaderedBlocks(t *testing.T) {
	separator := strings.Repeat("=", 80)
	expected := "\n" + separator + "\nFILE PATH: src/a.ts\n" + separator + "\n\nexport const a = 1;\n" +
		"\n" + separator + "\nFILE PATH: styles/site.css\n" + separator + "\n\nbody { color: <red>; }\n\n"

	assert.Equal(t, expected, render(t, types.FormatRaw, sampleFiles))
}

func TestRawStreamRendererPreservesLineEndings(t *testing.T) {
	files := []types.CollectedFile{
		{RelativePath: "win.ts", Content: "a\r\nb\r\n"},
		{RelativePath: "mac.ts", Content: "c\rd"},
	}

	rendered := render(t, types.FormatRaw, files)

	assert.Contains(t, rendered, "\n\na\r\nb\r\n\n")
	assert.Contains(t, rendered, "\n\nc\rd\n")
}

func TestRawStreamRendererWithoutFilesWritesNothing(t *testing.T) {
	assert.Empty(t, render(t, types.FormatRaw, nil))
}

func TestJSONStreamRendererProducesValidArray(t *testing.T) {
	rendered := render(t, types.FormatJSON, sampleFiles)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "src/a.ts", decoded[0]["path"])
	assert.Equal(t, "body { color: <red>; }\n", decoded[1]["content"])
	assert.Contains(t, rendered, "<red>", "html characters stay unescaped")
}

func TestJSONStreamRendererEmptyArray(t *testing.T) {
	rendered := render(t, types.FormatJSON, nil)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	assert.Empty(t, decoded)
}

func TestXMLStreamRendererRoundTripsContent(t *testing.T) {
	files := append([]types.CollectedFile{}, sampleFiles...)
	files = append(files, types.CollectedFile{RelativePath: "tricky.js", Content: "const s = \"]]>\";"})
	rendered := render(t, types.FormatXML, files)

	var document struct {
		Files []struct {
			Path    string `xml:"path,attr"`
			Content string `xml:",chardata"`
		} `xml:"file"`
	}
	require.NoError(t, xml.Unmarshal([]byte(rendered), &document))
	require.Len(t, document.Files, 3)
	assert.Equal(t, "styles/site.css", document.Files[1].Path)
	assert.Equal(t, "body { color: <red>; }\n", document.Files[1].Content)
	assert.Equal(t, "const s = \"]]>\";", document.Files[2].Content)
}

func TestNewStreamRendererRejectsUnknownFormat(t *testing.T) {
	_, err := output.NewStreamRenderer("yaml", &bytes.Buffer{})
	require.Error(t, err)
	assert.False(t, output.IsSupportedFormat("yaml"))
	assert.True(t, output.IsSupportedFormat("JSON"))
}
