package manifest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// Reporter prints a human-readable summary of a run
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. Colors are used when forceColors is set or
// the environment supports them.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(forceColors),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintManifest lists the manifest entries, largest first.
func (r *Reporter) PrintManifest(location string, m Manifest) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleGreen, "Wrote", r.useColors),
		RenderStyle(StyleCyan, location, r.useColors))

	var total int64
	for _, e := range m.Files {
		total += e.Size
		line := fmt.Sprintf("  %10s  %s", humanize.Bytes(uint64(e.Size)), e.Path)
		if len(e.Tags) > 0 {
			line += " " + RenderStyle(StyleGray, "["+strings.Join(e.Tags, ", ")+"]", r.useColors)
		}
		fmt.Fprintln(r.w, line)
	}

	fmt.Fprintf(r.w, "%s, %s total\n",
		pluralizeCount(len(m.Files), "image", "images"),
		RenderStyle(StyleYellow, humanize.Bytes(uint64(total)), r.useColors))
}

// PrintErrors lists non-fatal errors raised during the run.
func (r *Reporter) PrintErrors(errs []error) {
	if len(errs) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Errors", r.useColors))
	for _, err := range errs {
		fmt.Fprintf(r.w, "• %s\n", err)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
