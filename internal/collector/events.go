package collector

import (
	"github.com/tyemirov/flatcode/internal/types"
)

// EventKind identifies what a walk produced.
type EventKind string

const (
	EventKindFile    EventKind = "file"
	EventKindWarning EventKind = "warning"
)

// Event travels from the walker to the single writer.
type Event struct {
	Kind EventKind
	File *types.CollectedFile
	Path string
	Err  error
}
