package manifest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterPrintManifest(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}

	reporter.PrintManifest("dist/manifest.json", Manifest{Files: []Entry{
		{Path: "/images/hero.png", Size: 500, Tags: []string{"hero", "lcp"}},
		{Path: "icon.svg", Size: 20, Tags: []string{}},
	}})

	out := buf.String()
	assert.Contains(t, out, "Wrote dist/manifest.json")
	assert.Contains(t, out, "500 B  /images/hero.png [hero, lcp]")
	assert.Contains(t, out, "20 B  icon.svg\n")
	assert.Contains(t, out, "2 images, 520 B total")
}

func TestReporterPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}

	reporter.PrintErrors(nil)
	require.Empty(t, buf.String())

	reporter.PrintErrors([]error{errors.New("cssmanifest: a.css: Streams are not supported!")})
	assert.Contains(t, buf.String(), "• cssmanifest: a.css: Streams are not supported!")
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 image", pluralizeCount(1, "image", "images"))
	assert.Equal(t, "0 images", pluralizeCount(0, "image", "images"))
}

func TestPluginErrorMessage(t *testing.T) {
	err := newStreamError("a.css")
	assert.Equal(t, "cssmanifest: a.css: Streams are not supported!", err.Error())
	assert.True(t, errors.Is(err, ErrStreamNotSupported))

	err = NewConfigError("`extensions-allowed` must be a list, got %T", "png")
	assert.Equal(t, "cssmanifest: `extensions-allowed` must be a list, got string", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "short", abbreviate("short", 30))
	assert.Equal(t, "data:...", abbreviate("data:image/png", 5))
}
