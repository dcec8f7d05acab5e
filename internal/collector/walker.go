package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tyemirov/flatcode/internal/types"
	"github.com/tyemirov/flatcode/internal/utils"
)

// treeWalker visits directories top-down. Within a directory the files are
// emitted first, in lexical order, and then the surviving subdirectories are
// descended in lexical order. Pruned directories are never listed.
type treeWalker struct {
	ctx    context.Context
	root   string
	filter Filter
	logger *zap.Logger
	out    chan<- Event
}

func (walker *treeWalker) walk() error {
	return walker.walkDirectory(walker.root)
}

func (walker *treeWalker) walkDirectory(directoryPath string) error {
	if err := walker.ctx.Err(); err != nil {
		return err
	}
	entries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		if directoryPath == walker.root {
			return fmt.Errorf(errorReadRootFormat, directoryPath, readError)
		}
		if err := walker.warn(walker.relative(directoryPath), readError); err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
	}

	var subdirectories []string
	for _, entry := range entries {
		entryPath := filepath.Join(directoryPath, entry.Name())
		isDirectory, isSymlink := classify(entryPath, entry)
		if isDirectory {
			if isSymlink {
				continue
			}
			if walker.filter.SkipDirectory(entry.Name()) {
				walker.logger.Debug("pruned directory", zap.String("path", walker.relative(entryPath)))
				continue
			}
			if walker.filter.ExcludedByPattern(walker.relative(entryPath), true) {
				walker.logger.Debug("excluded directory", zap.String("path", walker.relative(entryPath)))
				continue
			}
			subdirectories = append(subdirectories, entryPath)
			continue
		}
		if !isSymlink && !entry.Type().IsRegular() {
			continue
		}
		if err := walker.visitFile(entryPath, entry.Name()); err != nil {
			return err
		}
	}

	for _, subdirectoryPath := range subdirectories {
		if err := walker.walkDirectory(subdirectoryPath); err != nil {
			return err
		}
	}
	return nil
}

func (walker *treeWalker) visitFile(filePath, name string) error {
	if !walker.filter.IncludeFile(name) {
		return nil
	}
	relativePath := walker.relative(filePath)
	if walker.filter.ExcludedByPattern(relativePath, false) {
		return nil
	}

	// #nosec G304
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return walker.warn(relativePath, readError)
	}
	content, decodeError := utils.DecodeText(fileBytes)
	if decodeError != nil {
		return walker.warn(relativePath, decodeError)
	}

	return walker.send(Event{
		Kind: EventKindFile,
		Path: relativePath,
		File: &types.CollectedFile{
			AbsolutePath: filePath,
			RelativePath: relativePath,
			Content:      content,
			SizeBytes:    int64(len(fileBytes)),
		},
	})
}

func (walker *treeWalker) warn(relativePath string, err error) error {
	return walker.send(Event{Kind: EventKindWarning, Path: relativePath, Err: err})
}

func (walker *treeWalker) send(event Event) error {
	select {
	case <-walker.ctx.Done():
		return walker.ctx.Err()
	case walker.out <- event:
		return nil
	}
}

func (walker *treeWalker) relative(fullPath string) string {
	return utils.RelativePathOrSelf(fullPath, walker.root)
}

// classify reports whether entry is a directory, resolving symbolic links.
// Links are never descended; a dangling link is treated as a file so that
// reading it surfaces the error.
func classify(entryPath string, entry os.DirEntry) (isDirectory bool, isSymlink bool) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), false
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		return false, true
	}
	return targetInfo.IsDir(), true
}
