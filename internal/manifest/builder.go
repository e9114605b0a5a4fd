package manifest

import (
	"encoding/json"
	"path"
	"sort"
	"strings"
)

// Builder accumulates manifest entries for one run. The first occurrence of
// a url token wins; later occurrences are ignored.
type Builder struct {
	baseDir string
	allowed map[string]bool
	entries []Entry
	index   map[string]int
}

// NewBuilder creates an empty builder. An empty extension list allows every
// extension.
func NewBuilder(baseDir string, allowedExtensions []string) *Builder {
	b := &Builder{
		baseDir: baseDir,
		index:   make(map[string]int),
	}
	if len(allowedExtensions) > 0 {
		b.allowed = make(map[string]bool, len(allowedExtensions))
		for _, ext := range allowedExtensions {
			b.allowed[strings.TrimPrefix(ext, ".")] = true
		}
	}
	return b
}

// Seen reports whether url already has an entry.
func (b *Builder) Seen(url string) bool {
	_, ok := b.index[url]
	return ok
}

// Allowed reports whether the extension of url passes the filter.
func (b *Builder) Allowed(url string) bool {
	if b.allowed == nil {
		return true
	}
	return b.allowed[Extension(url)]
}

// Record stores an entry for url unless it is a duplicate or its extension
// is filtered out, in which case the reason is returned.
func (b *Builder) Record(url string, tags *string, desc Descriptor) SkipReason {
	if b.Seen(url) {
		return SkipDuplicate
	}
	if !b.Allowed(url) {
		return SkipExtension
	}

	b.index[url] = len(b.entries)
	b.entries = append(b.entries, Entry{
		Key:  url,
		Path: rewritePath(url),
		Size: desc.Size,
		Tags: parseTags(tags),
	})
	return SkipNone
}

// Len returns the number of recorded entries.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Finalize returns the manifest with entries ordered by size, largest
// first. Entries of equal size keep the order they were recorded in.
func (b *Builder) Finalize() Manifest {
	files := make([]Entry, len(b.entries))
	copy(files, b.entries)
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Size > files[j].Size
	})
	return Manifest{Path: b.baseDir, Files: files}
}

// Encode serializes m as compact JSON. Output is deterministic for a given
// manifest.
func Encode(m Manifest) ([]byte, error) {
	files := make([]Entry, len(m.Files))
	copy(files, m.Files)
	for i := range files {
		if files[i].Tags == nil {
			files[i].Tags = []string{}
		}
	}
	m.Files = files
	return json.Marshal(m)
}

// Extension returns the extension of a url token without the leading dot.
// Query strings and fragments are ignored; the comparison is case-sensitive.
func Extension(url string) string {
	return strings.TrimPrefix(path.Ext(stripQuery(url)), ".")
}

// rewritePath turns a single leading "../" into "/".
func rewritePath(url string) string {
	if strings.HasPrefix(url, "../") {
		return "/" + strings.TrimPrefix(url, "../")
	}
	return url
}
