// Package config loads flatcode configuration files and compiles ignore
// files into a gitignore matcher.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/tyemirov/flatcode/internal/utils"
)

const commentPrefix = "#"

// LoadIgnoreFilePatterns reads an ignore file and returns its pattern lines.
// Blank lines and comments are dropped; negations are kept verbatim. A
// missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadIgnoreMatcher walks rootDirectoryPath and compiles every
// utils.IgnoreFileName and utils.GitIgnoreFileName it finds into a single
// gitignore matcher. Each pattern is scoped to the directory holding its
// file, so unanchored names match at any depth below that directory and
// a leading slash anchors to it. Deeper files take precedence over their
// parents. Directories for which skipDirectory returns true are not
// descended. The matcher expects slash-separated paths relative to the root.
func LoadIgnoreMatcher(rootDirectoryPath string, skipDirectory func(name string) bool) (gitignore.Matcher, error) {
	var compiledPatterns []gitignore.Pattern

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if currentDirectoryPath == rootDirectoryPath {
				return walkError
			}
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if currentDirectoryPath != rootDirectoryPath && skipDirectory != nil && skipDirectory(directoryEntry.Name()) {
			return filepath.SkipDir
		}

		domain := ignoreDomain(utils.RelativePathOrSelf(currentDirectoryPath, rootDirectoryPath))
		for _, ignoreFileName := range []string{utils.IgnoreFileName, utils.GitIgnoreFileName} {
			ignoreFilePath := filepath.Join(currentDirectoryPath, ignoreFileName)
			ignorePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
			if loadError != nil {
				return fmt.Errorf("loading %s from %s: %w", ignoreFileName, currentDirectoryPath, loadError)
			}
			for _, pattern := range ignorePatterns {
				compiledPatterns = append(compiledPatterns, gitignore.ParsePattern(pattern, domain))
			}
		}
		return nil
	}

	if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
		return nil, walkError
	}
	return gitignore.NewMatcher(compiledPatterns), nil
}

func ignoreDomain(relativeDirectory string) []string {
	if relativeDirectory == "." {
		return nil
	}
	return strings.Split(relativeDirectory, "/")
}
