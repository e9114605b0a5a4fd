package cssmanifest

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

// Config holds build configuration
type Config struct {
	SourceDir         string    // Directory include patterns are relative to
	Includes          []string  // ["**/*.css"]
	Dest              string    // Copy stylesheets and write the manifest here ("" = write the manifest next to the sources)
	BaseDir           string    // Prefix root for local image references
	AllowedExtensions []string  // nil = manifest.DefaultExtensions, empty = allow all
	Verbose           bool      // Enable debug logging
	LogFormat         string    // "pretty" (default) or "json"
	LogOutput         io.Writer // Defaults to stderr
	NoColor           bool      // Disable colors in log output

	// Fs receives the written records and serves image reads.
	// Defaults to the OS filesystem.
	Fs afero.Fs
}

// BuildResult contains build output and stats
type BuildResult struct {
	Manifest     manifest.Manifest
	ManifestPath string   // Where manifest.json was written
	Written      []string // Every path written, manifest last
	Stats        ScanStats
	Errors       []error // Non-fatal errors, e.g. rejected records
}

// Build is the main entry point
func Build(config Config) (*BuildResult, error) {
	fs := config.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	logger := manifest.NewLogger(manifest.LoggerOptions{
		Output:  config.LogOutput,
		Format:  config.LogFormat,
		Verbose: config.Verbose,
		NoColor: config.NoColor,
	})

	// 1. Validate configuration before touching any file
	pipeline, err := manifest.NewPipeline(manifest.Config{
		AllowedExtensions: config.AllowedExtensions,
		BaseDir:           config.BaseDir,
		Verbose:           config.Verbose,
	}, manifest.WithFs(fs), manifest.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// 2. Find and read stylesheets
	sources, stats, err := expandSources(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if config.Verbose && stats.FilesSkipped > 0 {
		logger.Debug().
			Int("scanned", stats.FilesScanned).
			Int("skipped", stats.FilesSkipped).
			Msg("Skipped gitignored stylesheets")
	}

	files, err := loadFiles(sources)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	// 3. Run the pipeline into the destination
	sink := newDestSink(fs, config.Dest)
	result := &BuildResult{Stats: stats}

	if err := pipeline.Run(files, sink); err != nil {
		var joined interface{ Unwrap() []error }
		if !errors.As(err, &joined) {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		result.Errors = joined.Unwrap()
	}

	result.Manifest = pipeline.Manifest()
	result.ManifestPath = sink.manifestPath
	result.Written = sink.written
	return result, nil
}
