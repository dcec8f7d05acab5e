// Package collector walks a project tree and concatenates the contents of
// selected source files into one aggregate artifact.
package collector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tyemirov/flatcode/internal/filelock"
	"github.com/tyemirov/flatcode/internal/output"
	"github.com/tyemirov/flatcode/internal/tokenizer"
	"github.com/tyemirov/flatcode/internal/types"
	"github.com/tyemirov/flatcode/internal/utils"
)

const (
	outputFilePermissions = 0o644
	outputBufferSize      = 64 * 1024

	errorRootEmpty        = "collector: root path is empty"
	errorAbsoluteRoot     = "resolve root %s: %w"
	errorOpenOutputFormat = "open output %s: %w"
	errorReadRootFormat   = "read root directory %s: %w"
	errorFlushOutput      = "flush output %s: %w"
	errorCloseOutput      = "close output %s: %w"
)

// Reporter receives human-readable progress notifications.
type Reporter interface {
	Started(root string)
	Added(relativePath string)
	Failed(relativePath string, err error)
}

// Options configures a collection run.
type Options struct {
	// Root is the directory tree to scan.
	Root string
	// OutputPath names the artifact; relative paths resolve against Root.
	OutputPath string
	Format     string
	Filter     FilterOptions
	// Capture, when set, receives a copy of every byte written to the artifact.
	Capture      io.Writer
	TokenCounter tokenizer.Counter
	TokenModel   string
	Reporter     Reporter
	Logger       *zap.Logger
}

// Collector produces one aggregate artifact per Collect call.
type Collector struct {
	root       string
	outputPath string
	format     string
	filter     Filter
	capture    io.Writer
	counter    tokenizer.Counter
	tokenModel string
	reporter   Reporter
	logger     *zap.Logger
}

// New validates options and builds a Collector.
func New(options Options) (*Collector, error) {
	if options.Root == "" {
		return nil, errors.New(errorRootEmpty)
	}
	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorAbsoluteRoot, options.Root, absoluteError)
	}
	absoluteRoot = filepath.Clean(absoluteRoot)

	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = utils.DefaultOutputFileName
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(absoluteRoot, outputPath)
	}
	if !output.IsSupportedFormat(orDefault(options.Format, types.FormatRaw)) {
		return nil, fmt.Errorf("unsupported format %q", options.Format)
	}

	filterOptions := options.Filter
	filterOptions.SelfNames = append(append([]string{}, filterOptions.SelfNames...),
		filepath.Base(outputPath),
		filepath.Base(outputPath)+utils.LockFileSuffix,
	)

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := options.Reporter
	if reporter == nil {
		reporter = discardReporter{}
	}

	return &Collector{
		root:       absoluteRoot,
		outputPath: outputPath,
		format:     orDefault(options.Format, types.FormatRaw),
		filter:     NewFilter(filterOptions),
		capture:    options.Capture,
		counter:    options.TokenCounter,
		tokenModel: options.TokenModel,
		reporter:   reporter,
		logger:     logger.With(zap.String("run", uuid.NewString())),
	}, nil
}

// Root returns the absolute directory being scanned.
func (collector *Collector) Root() string {
	return collector.root
}

// OutputPath returns the absolute artifact path.
func (collector *Collector) OutputPath() string {
	return collector.outputPath
}

// Collect writes the aggregate artifact. Files that cannot be read or decoded
// are reported and skipped. The returned error is non-nil only when the
// artifact cannot be produced, the root cannot be listed, or ctx is cancelled.
func (collector *Collector) Collect(ctx context.Context) (summary types.Summary, err error) {
	summary = types.Summary{
		OutputPath: collector.outputPath,
		Format:     collector.format,
		RootPath:   collector.root,
	}

	lock := filelock.NewFileLock(collector.outputPath + utils.LockFileSuffix)
	if lockError := lock.TryLock(); lockError != nil {
		return summary, lockError
	}
	defer func() {
		if releaseError := lock.Release(); releaseError != nil {
			collector.logger.Warn("release output lock", zap.Error(releaseError))
		}
	}()

	outputFile, openError := os.OpenFile(collector.outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermissions)
	if openError != nil {
		return summary, fmt.Errorf(errorOpenOutputFormat, collector.outputPath, openError)
	}
	defer func() {
		if closeError := outputFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutput, collector.outputPath, closeError)
		}
	}()

	bufferedWriter := bufio.NewWriterSize(outputFile, outputBufferSize)
	var destination io.Writer = bufferedWriter
	if collector.capture != nil {
		destination = io.MultiWriter(bufferedWriter, collector.capture)
	}

	renderer, rendererError := output.NewStreamRenderer(collector.format, destination)
	if rendererError != nil {
		return summary, rendererError
	}

	collector.reporter.Started(collector.root)
	collector.logger.Debug("collect started", zap.String("root", collector.root), zap.String("output", collector.outputPath), zap.String("format", collector.format))

	if beginError := renderer.Begin(); beginError != nil {
		return summary, beginError
	}

	var tally *tokenizer.Tally
	if collector.counter != nil {
		tally = tokenizer.NewTally(collector.counter)
	}
	pipelineError := collector.dispatch(ctx, renderer, tally, &summary)

	if finishError := renderer.Finish(); finishError != nil && pipelineError == nil {
		pipelineError = finishError
	}
	if flushError := bufferedWriter.Flush(); flushError != nil && pipelineError == nil {
		pipelineError = fmt.Errorf(errorFlushOutput, collector.outputPath, flushError)
	}
	if errors.Is(pipelineError, context.Canceled) || errors.Is(pipelineError, context.DeadlineExceeded) {
		summary.Interrupted = true
	}

	collector.logger.Debug("collect finished", zap.Int("files", summary.Files), zap.Int("failed", summary.Failed), zap.Int64("bytes", summary.Bytes))
	return summary, pipelineError
}

// dispatch runs the walker and the single writer as a producer/consumer pair.
// The writer handles events in production order.
func (collector *Collector) dispatch(ctx context.Context, renderer output.StreamRenderer, tally *tokenizer.Tally, summary *types.Summary) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan Event)

	group.Go(func() error {
		defer close(events)
		walker := &treeWalker{
			ctx:    streamCtx,
			root:   collector.root,
			filter: collector.filter,
			logger: collector.logger,
			out:    events,
		}
		return walker.walk()
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := collector.consume(renderer, event, tally, summary); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}

func (collector *Collector) consume(renderer output.StreamRenderer, event Event, tally *tokenizer.Tally, summary *types.Summary) error {
	switch event.Kind {
	case EventKindWarning:
		summary.Failed++
		collector.reporter.Failed(event.Path, event.Err)
	case EventKindFile:
		if event.File == nil {
			return nil
		}
		if err := renderer.WriteFile(*event.File); err != nil {
			return fmt.Errorf("write %s: %w", event.File.RelativePath, err)
		}
		summary.Files++
		summary.Bytes += event.File.SizeBytes
		collector.countTokens(tally, event.File, summary)
		collector.reporter.Added(event.File.RelativePath)
	}
	return nil
}

func (collector *Collector) countTokens(tally *tokenizer.Tally, file *types.CollectedFile, summary *types.Summary) {
	if tally == nil {
		return
	}
	if countError := tally.Add(file.Content); countError != nil {
		collector.logger.Warn("count tokens", zap.String("path", file.RelativePath), zap.Error(countError))
		return
	}
	summary.Tokens = tally.Total()
	summary.Model = collector.tokenModel
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

type discardReporter struct{}

func (discardReporter) Started(string)       {}
func (discardReporter) Added(string)         {}
func (discardReporter) Failed(string, error) {}
