package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmanifest"
	"github.com/yacobolo/cssmanifest/internal/manifest"
)

var k = koanf.New(".")

const defaultConfigPath = ".cssmanifest.yaml"

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set
	// override keys already present)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSMANIFEST_* prefix)
	if err := k.Load(env.Provider("CSSMANIFEST_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps environment variable names to config keys:
//
//	CSSMANIFEST_VERBOSE      -> verbose
//	CSSMANIFEST_BASE_DIR     -> base-dir
//	CSSMANIFEST_BUILD__DEST  -> build.dest
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "CSSMANIFEST_"))
	key = strings.ReplaceAll(key, "__", ".")
	return strings.ReplaceAll(key, "_", "-")
}

// buildBuildConfig constructs the library's Config struct from koanf state.
func buildBuildConfig() (cssmanifest.Config, error) {
	exts, err := allowedExtensions()
	if err != nil {
		return cssmanifest.Config{}, err
	}

	config := cssmanifest.Config{
		SourceDir:         getStringWithFallback("source", "build.source", ""),
		Dest:              getStringWithFallback("dest", "build.dest", ""),
		BaseDir:           k.String("base-dir"),
		AllowedExtensions: exts,
		Verbose:           getBoolWithFallback("verbose", "verbose", false),
		LogFormat:         getStringWithFallback("log-format", "build.log-format", "pretty"),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = []string{"**/*.css"}
	}

	return config, nil
}

// allowedExtensions reads extensions-allowed. An absent key yields nil (the
// library default); any value that is not a list is a configuration error.
func allowedExtensions() ([]string, error) {
	raw := k.Get("extensions-allowed")
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		exts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, manifest.NewConfigError("`extensions-allowed` entries must be strings, got %T", item)
			}
			exts = append(exts, s)
		}
		return exts, nil
	default:
		return nil, manifest.NewConfigError("`extensions-allowed` must be a list, got %T", raw)
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
