package cssmanifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

// destSink writes pipeline records to disk.
//
// With a destination directory every record is written below it, relative
// to its base. Without one, stylesheets are left untouched and only
// generated records are written, at their own path.
type destSink struct {
	fs           afero.Fs
	dest         string
	written      []string
	manifestPath string // Where the generated manifest was written
}

func newDestSink(fs afero.Fs, dest string) *destSink {
	return &destSink{fs: fs, dest: dest}
}

// target returns where f is written, or "" when it is not written at all.
func (s *destSink) target(f *manifest.File) (string, error) {
	if s.dest == "" {
		if !f.Generated {
			return "", nil
		}
		return f.Path, nil
	}

	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", f.Path, err)
	}
	return filepath.Join(s.dest, rel), nil
}

func (s *destSink) Push(f *manifest.File) error {
	if f.Kind() != manifest.ContentBuffer {
		return nil
	}

	path, err := s.target(f)
	if err != nil || path == "" {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, f.Contents, os.FileMode(0o644)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	s.written = append(s.written, path)
	if f.Generated {
		s.manifestPath = path
	}
	return nil
}
