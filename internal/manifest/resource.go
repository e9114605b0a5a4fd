package manifest

import (
	"fmt"

	"github.com/spf13/afero"
)

// Descriptor describes a local image that was read successfully.
type Descriptor struct {
	Path string
	Size int64
}

// Scanner reads resolved local images.
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a scanner reading from fs.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan reads the file at location fully and describes it. The target may
// have disappeared or been replaced by a directory since it was resolved;
// both cases report ErrNotFound.
func (s *Scanner) Scan(location string) (Descriptor, error) {
	isDir, err := afero.IsDir(s.fs, location)
	if err == nil && isDir {
		return Descriptor{}, fmt.Errorf("%s is a directory: %w", location, ErrNotFound)
	}

	contents, err := afero.ReadFile(s.fs, location)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read %s: %v: %w", location, err, ErrNotFound)
	}

	return Descriptor{Path: location, Size: int64(len(contents))}, nil
}
