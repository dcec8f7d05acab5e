// Package types defines the cross-package data structures used by flatcode.
package types

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// CollectedFile is one file that passed filtering and decoded as text.
type CollectedFile struct {
	AbsolutePath string `json:"-" xml:"-"`
	RelativePath string `json:"path" xml:"path,attr"`
	Content      string `json:"content" xml:",chardata"`
	SizeBytes    int64  `json:"-" xml:"-"`
}

// Summary captures aggregate information about a completed run.
type Summary struct {
	Files       int    `json:"files"`
	Failed      int    `json:"failed"`
	Bytes       int64  `json:"bytes"`
	Tokens      int    `json:"tokens,omitempty"`
	Model       string `json:"model,omitempty"`
	OutputPath  string `json:"outputPath"`
	Format      string `json:"format"`
	RootPath    string `json:"rootPath"`
	Interrupted bool   `json:"interrupted,omitempty"`
}
