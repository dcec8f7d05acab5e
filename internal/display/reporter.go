// Package display writes the human-readable progress lines of a run.
//
// Lines are informational only and carry no stability contract. Color is
// applied only when the destination is a terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/tyemirov/flatcode/internal/types"
	"github.com/tyemirov/flatcode/internal/utils"
)

const (
	startedFormat        = "Scanning directory: %s...\n"
	addedFormat          = "Added: %s\n"
	failedFormat         = "Error reading file %s: %v\n"
	completedFormat      = "\nDone! Collected %d files (%s%s) into %s\n"
	tokensSuffixFormat   = ", %d tokens"
	failedSuffixFormat   = "%d files could not be read\n"
	interruptedFormat    = "\nInterrupted after %d files; %s is incomplete\n"
	warningMessageFormat = "Warning: %s\n"
)

// ConsoleReporter prints progress lines to a writer, normally stderr.
type ConsoleReporter struct {
	writer   io.Writer
	quiet    bool
	accent   *color.Color
	success  *color.Color
	failure  *color.Color
	emphasis *color.Color
}

// NewConsoleReporter constructs a reporter. When quiet is set the per-file
// "Added" lines are suppressed; errors and the summary are always printed.
func NewConsoleReporter(writer io.Writer, quiet bool) *ConsoleReporter {
	reporter := &ConsoleReporter{
		writer:   writer,
		quiet:    quiet,
		accent:   color.New(color.FgCyan),
		success:  color.New(color.FgGreen),
		failure:  color.New(color.FgRed),
		emphasis: color.New(color.FgYellow, color.Bold),
	}
	enabled := IsTerminal(writer)
	for _, palette := range []*color.Color{reporter.accent, reporter.success, reporter.failure, reporter.emphasis} {
		if enabled {
			palette.EnableColor()
		} else {
			palette.DisableColor()
		}
	}
	return reporter
}

// IsTerminal reports whether writer is an interactive terminal.
func IsTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// Started reports the root being scanned.
func (reporter *ConsoleReporter) Started(root string) {
	reporter.accent.Fprintf(reporter.writer, startedFormat, root)
}

// Added reports a collected file.
func (reporter *ConsoleReporter) Added(relativePath string) {
	if reporter.quiet {
		return
	}
	fmt.Fprintf(reporter.writer, addedFormat, relativePath)
}

// Failed reports a file that was skipped because it could not be read.
func (reporter *ConsoleReporter) Failed(relativePath string, err error) {
	reporter.failure.Fprintf(reporter.writer, failedFormat, relativePath, err)
}

// Warn reports a non-fatal problem unrelated to a single file.
func (reporter *ConsoleReporter) Warn(message string) {
	reporter.emphasis.Fprintf(reporter.writer, warningMessageFormat, message)
}

// Completed prints the run summary.
func (reporter *ConsoleReporter) Completed(summary types.Summary) {
	if summary.Interrupted {
		reporter.emphasis.Fprintf(reporter.writer, interruptedFormat, summary.Files, summary.OutputPath)
		return
	}
	tokens := utils.EmptyString
	if summary.Tokens > 0 {
		tokens = fmt.Sprintf(tokensSuffixFormat, summary.Tokens)
	}
	reporter.success.Fprintf(reporter.writer, completedFormat, summary.Files, utils.FormatFileSize(summary.Bytes), tokens, summary.OutputPath)
	if summary.Failed > 0 {
		reporter.failure.Fprintf(reporter.writer, failedSuffixFormat, summary.Failed)
	}
}
