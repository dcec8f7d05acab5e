package collector

import (
	"path/filepath"
	"strings"

	"github.com/tyemirov/flatcode/internal/utils"
)

// DefaultIgnoredDirectories are pruned from the walk before descent.
var DefaultIgnoredDirectories = []string{
	".next",
	"node_modules",
	".git",
	".vscode",
	"dist",
	"build",
	"ARCHIVE",
	"public",
}

// DefaultAllowedExtensions lists the suffixes eligible for collection.
var DefaultAllowedExtensions = []string{
	".ts",
	".tsx",
	".js",
	".mjs",
	".json",
	".css",
	".scss",
}

// DefaultIgnoredFiles are never collected even when their extension is allowed.
var DefaultIgnoredFiles = []string{
	"package-lock.json",
	"yarn.lock",
}

// FilterOptions configures a Filter. Nil slices fall back to the defaults;
// empty non-nil slices disable the corresponding rule.
type FilterOptions struct {
	IgnoredDirectories []string
	AllowedExtensions  []string
	IgnoredFiles       []string
	// SelfNames are file names excluded to keep the output and the running
	// executable out of the aggregate.
	SelfNames []string
	// ExcludePatterns are glob patterns matched against the relative path.
	ExcludePatterns []string
	// IgnoreMatcher applies gitignore rules compiled from ignore files.
	IgnoreMatcher IgnoreMatcher
}

// IgnoreMatcher matches a relative path split into segments.
type IgnoreMatcher interface {
	Match(path []string, isDir bool) bool
}

// Filter decides which directories are pruned and which files are collected.
type Filter struct {
	ignoredDirectories map[string]struct{}
	allowedExtensions  map[string]struct{}
	ignoredFiles       map[string]struct{}
	selfNames          map[string]struct{}
	excludePatterns    []string
	ignoreMatcher      IgnoreMatcher
}

// NewFilter builds lookup sets from options.
func NewFilter(options FilterOptions) Filter {
	return Filter{
		ignoredDirectories: utils.StringSet(withDefault(options.IgnoredDirectories, DefaultIgnoredDirectories)),
		allowedExtensions:  utils.StringSet(normalizeExtensions(withDefault(options.AllowedExtensions, DefaultAllowedExtensions))),
		ignoredFiles:       utils.StringSet(withDefault(options.IgnoredFiles, DefaultIgnoredFiles)),
		selfNames:          utils.StringSet(options.SelfNames),
		excludePatterns:    utils.DeduplicatePatterns(options.ExcludePatterns),
		ignoreMatcher:      options.IgnoreMatcher,
	}
}

// SkipDirectory reports whether a directory named name is pruned.
func (filter Filter) SkipDirectory(name string) bool {
	_, ignored := filter.ignoredDirectories[name]
	return ignored
}

// IncludeFile reports whether a file named name is collected.
func (filter Filter) IncludeFile(name string) bool {
	if _, allowed := filter.allowedExtensions[ExtensionOf(name)]; !allowed {
		return false
	}
	if _, ignored := filter.ignoredFiles[name]; ignored {
		return false
	}
	if _, isSelf := filter.selfNames[name]; isSelf {
		return false
	}
	return true
}

// ExcludedByPattern reports whether relativePath matches an exclude pattern
// or is ignored by the ignore matcher. isDirectory selects directory-only
// gitignore rules.
func (filter Filter) ExcludedByPattern(relativePath string, isDirectory bool) bool {
	if len(filter.excludePatterns) > 0 && utils.ShouldIgnoreByPath(relativePath, filter.excludePatterns) {
		return true
	}
	if filter.ignoreMatcher == nil {
		return false
	}
	return filter.ignoreMatcher.Match(strings.Split(filepath.ToSlash(relativePath), "/"), isDirectory)
}

// ExtensionOf returns the suffix of name starting at its last dot, or the
// empty string. Leading dots belong to the name, so ".json" has no extension.
func ExtensionOf(name string) string {
	stem := strings.TrimLeft(name, ".")
	return filepath.Ext(stem)
}

func withDefault(values, defaults []string) []string {
	if values == nil {
		return defaults
	}
	return values
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmed := strings.TrimSpace(extension)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
