package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Kind classifies a url token.
type Kind int

const (
	// KindLocal is a path on the local filesystem.
	KindLocal Kind = iota
	// KindDataURI is an inline data: URI.
	KindDataURI
	// KindMaskReference is a fragment reference such as #mask.
	KindMaskReference
	// KindRemote is an http(s) or protocol-relative URL.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindDataURI:
		return "data-uri"
	case KindMaskReference:
		return "mask"
	case KindRemote:
		return "remote"
	}
	return "unknown"
}

// skipReason maps non-local kinds to the reason they are ignored.
func (k Kind) skipReason() SkipReason {
	switch k {
	case KindDataURI:
		return SkipDataURI
	case KindMaskReference:
		return SkipMask
	case KindRemote:
		return SkipRemote
	}
	return SkipNone
}

// Classify determines the kind of a url token. Checks run in priority order:
// data URI, mask reference, remote, local.
func Classify(token string) Kind {
	lower := strings.ToLower(token)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return KindDataURI
	case strings.HasPrefix(token, "#"):
		return KindMaskReference
	case strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(token, "//"):
		return KindRemote
	}
	return KindLocal
}

// Resolution is the outcome of resolving one url token.
type Resolution struct {
	Kind     Kind
	Location string // Filesystem location, set for KindLocal only
}

// Skipped reports whether the token needs no filesystem access.
func (r Resolution) Skipped() bool {
	return r.Kind != KindLocal
}

// Resolver maps url tokens to filesystem locations.
type Resolver struct {
	fs      afero.Fs
	baseDir string
}

// NewResolver creates a resolver rooted at baseDir on fs.
func NewResolver(fs afero.Fs, baseDir string) *Resolver {
	return &Resolver{fs: fs, baseDir: baseDir}
}

// Location computes where a local token lives. Root-relative tokens are
// prefixed with the base directory; everything else is resolved against the
// stylesheet's directory and the base directory. Query strings and fragments
// are removed.
func (r *Resolver) Location(token, stylesheetPath string) string {
	var location string
	if strings.HasPrefix(token, "/") {
		location = r.baseDir + token
	} else {
		location = filepath.Join(filepath.Dir(stylesheetPath), r.baseDir, token)
	}
	return stripQuery(location)
}

// Resolve classifies token and, for local tokens, verifies the target exists.
// Non-local tokens resolve without error and without touching the
// filesystem. A missing local target returns ErrNotFound along with the
// computed location.
func (r *Resolver) Resolve(token, stylesheetPath string) (Resolution, error) {
	kind := Classify(token)
	if kind != KindLocal {
		return Resolution{Kind: kind}, nil
	}

	res := Resolution{Kind: KindLocal, Location: r.Location(token, stylesheetPath)}
	exists, err := afero.Exists(r.fs, res.Location)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", res.Location, err)
	}
	if !exists {
		return res, fmt.Errorf("%s: %w", res.Location, ErrNotFound)
	}
	return res, nil
}

// stripQuery removes a trailing ?query or #fragment.
func stripQuery(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}
