package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmanifest.yaml")
	configContent := `
verbose: true
base-dir: assets
extensions-allowed:
  - png
  - webp
build:
  source: web/styles
  dest: dist
  include:
    - "**/*.css"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "assets", k.String("base-dir"))
	assert.Equal(t, "web/styles", k.String("build.source"))
	assert.Equal(t, "dist", k.String("build.dest"))

	config, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "web/styles", config.SourceDir)
	assert.Equal(t, "dist", config.Dest)
	assert.Equal(t, "assets", config.BaseDir)
	assert.Equal(t, []string{"png", "webp"}, config.AllowedExtensions)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.True(t, config.Verbose)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssmanifest.yaml"))

	config, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "", config.SourceDir)
	assert.Equal(t, "", config.Dest)
	assert.Equal(t, "", config.BaseDir)
	assert.Nil(t, config.AllowedExtensions)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.Equal(t, "pretty", config.LogFormat)
	assert.False(t, config.Verbose)
}

func TestConfigEmptyExtensionListAllowsAll(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmanifest.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("extensions-allowed: []\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildBuildConfig()
	require.NoError(t, err)
	assert.NotNil(t, config.AllowedExtensions)
	assert.Empty(t, config.AllowedExtensions)
}

func TestConfigExtensionsMustBeList(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmanifest.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("extensions-allowed: png\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	_, err := buildBuildConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "must be a list")
}

func TestConfigExtensionEntriesMustBeStrings(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmanifest.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("extensions-allowed:\n  - png\n  - 3\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	_, err := buildBuildConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrInvalidConfig))
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmanifest.yaml")
	configContent := `
base-dir: from-file
build:
  dest: from-file
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CSSMANIFEST_BASE_DIR", "from-env")
	t.Setenv("CSSMANIFEST_BUILD__DEST", "env-dist")
	t.Setenv("CSSMANIFEST_VERBOSE", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("base-dir"))
	assert.Equal(t, "env-dist", k.String("build.dest"))
	assert.True(t, k.Bool("verbose"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "verbose", envKey("CSSMANIFEST_VERBOSE"))
	assert.Equal(t, "base-dir", envKey("CSSMANIFEST_BASE_DIR"))
	assert.Equal(t, "build.log-format", envKey("CSSMANIFEST_BUILD__LOG_FORMAT"))
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("config.key", "from-config"))
	assert.Equal(t, "from-config", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("flag-key", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssmanifest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "extensions-allowed:")
	assert.Contains(t, string(data), "build:")

	// The generated file loads back to the documented defaults.
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".cssmanifest.yaml"))
	config, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, manifest.DefaultExtensions, config.AllowedExtensions)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".cssmanifest.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".cssmanifest.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssmanifest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "extensions-allowed:")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssmanifest dev\n", out.String())
}

func TestBuildCommand(t *testing.T) {
	resetKoanf()
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join("css"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join("images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join("css", "main.css"),
		[]byte(`.a { background: url(../images/a.png) /*preload:hero*/; }`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join("images", "a.png"), []byte("png!"), 0644))

	var out, errOut bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"build", "css/*.css"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join("css", "manifest.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"","files":[{"path":"/images/a.png","size":4,"tags":["hero"]}]}`, string(data))
	assert.Contains(t, out.String(), "/images/a.png")
	assert.Contains(t, out.String(), "1 image")
}
