package cssmanifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

// ScanStats tracks stylesheet discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually read (after filtering)
	FilesSkipped    int // Files skipped due to .gitignore
}

// source is a stylesheet selected for processing.
type source struct {
	path string
	base string // Static prefix of the pattern that matched
}

// loadGitIgnore compiles .gitignore from the working directory.
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile reports whether a stylesheet is excluded by .gitignore.
// Absolute paths (like /tmp/...) are outside the project and never skipped.
func shouldSkipFile(gi *ignore.GitIgnore, path string) bool {
	if gi == nil || filepath.IsAbs(path) {
		return false
	}
	return gi.MatchesPath(path)
}

// patternBase returns the directory part of pattern that contains no glob
// metacharacters. It becomes the base of every file the pattern matches.
func patternBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// expandSources expands include patterns under sourceDir, in pattern order,
// keeping the first base a file was matched with.
func expandSources(sourceDir string, includes []string) ([]source, ScanStats, error) {
	var sources []source
	seen := make(map[string]bool)
	stats := ScanStats{}
	gi := loadGitIgnore()

	for _, pattern := range includes {
		fullPattern := pattern
		if sourceDir != "" && !filepath.IsAbs(pattern) {
			fullPattern = filepath.Join(sourceDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		base := patternBase(fullPattern)

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(gi, match) {
				stats.FilesSkipped++
				continue
			}
			sources = append(sources, source{path: match, base: base})
			stats.FilesScanned++
		}
	}

	return sources, stats, nil
}

// loadFiles reads each stylesheet into a buffered record.
func loadFiles(sources []source) ([]*manifest.File, error) {
	files := make([]*manifest.File, 0, len(sources))
	for _, src := range sources {
		// #nosec G304 - path comes from configured glob patterns
		contents, err := os.ReadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet: %w", err)
		}
		if contents == nil {
			contents = []byte{}
		}
		files = append(files, &manifest.File{
			Base:     src.base,
			Path:     src.path,
			Contents: contents,
		})
	}
	return files, nil
}
