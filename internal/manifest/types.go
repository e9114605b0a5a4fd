package manifest

import (
	"io"
	"strings"
)

// PluginName identifies this transform in errors and log output.
const PluginName = "cssmanifest"

// FileName is the name of the generated manifest record.
const FileName = "manifest.json"

// DefaultExtensions are the image extensions recorded when none are configured.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "gif", "svg"}

// Config holds the per-run configuration. It is not modified once a
// Pipeline has been created from it.
type Config struct {
	// AllowedExtensions lists the extensions (without the dot) that may
	// appear in the manifest. nil means DefaultExtensions, an empty
	// non-nil slice disables filtering.
	AllowedExtensions []string
	BaseDir           string // Prefix root for local references
	Verbose           bool   // Enable diagnostic logging
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)
	return Config{AllowedExtensions: exts}
}

// withDefaults fills absent fields and normalizes extensions.
func (c Config) withDefaults() Config {
	out := c
	if c.AllowedExtensions == nil {
		out.AllowedExtensions = DefaultConfig().AllowedExtensions
		return out
	}
	out.AllowedExtensions = make([]string, 0, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		out.AllowedExtensions = append(out.AllowedExtensions, strings.TrimPrefix(ext, "."))
	}
	return out
}

// Validate reports configuration errors that must stop a run before any
// file is processed.
func (c Config) Validate() error {
	for _, ext := range c.AllowedExtensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			return newConfigError("extensions-allowed must not contain empty entries")
		}
	}
	return nil
}

// Match is one image reference found in stylesheet text.
type Match struct {
	URL    string  // Token inside url(...), quotes and whitespace removed
	Tags   *string // Raw TAG_LIST from /*preload:TAG_LIST*/, nil when absent
	Offset int     // Byte offset of the match in the stylesheet
}

// Entry is a single image in the manifest.
type Entry struct {
	Key  string   `json:"-"` // Original url token
	Path string   `json:"path"`
	Size int64    `json:"size"`
	Tags []string `json:"tags"`
}

// Manifest is the generated preload manifest.
type Manifest struct {
	Path  string  `json:"path"`
	Files []Entry `json:"files"`
}

// ContentKind describes what a File carries.
type ContentKind int

const (
	// ContentNull is a record without contents (e.g. a directory).
	ContentNull ContentKind = iota
	// ContentStream is a record backed by a non-seekable reader.
	ContentStream
	// ContentBuffer is a record whose contents are fully in memory.
	ContentBuffer
)

func (k ContentKind) String() string {
	switch k {
	case ContentNull:
		return "null"
	case ContentStream:
		return "stream"
	case ContentBuffer:
		return "buffer"
	}
	return "unknown"
}

// File is a record flowing through the pipeline.
type File struct {
	Base     string    // Base directory the record is relative to
	Path     string    // Full path of the record
	Contents []byte    // Materialized contents
	Stream   io.Reader // Streamed contents (unsupported)

	// Generated is set on records created by the pipeline itself.
	Generated bool
}

// Kind reports how the record's contents are held.
func (f *File) Kind() ContentKind {
	switch {
	case f.Contents != nil:
		return ContentBuffer
	case f.Stream != nil:
		return ContentStream
	default:
		return ContentNull
	}
}
