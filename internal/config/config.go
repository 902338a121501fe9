package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/walker"
)

// ConfigFileName is the per-repository configuration file.
const ConfigFileName = ".autoversion.yaml"

// ConfigFilePerm defines secure file permissions for config files (owner
// read/write only).
const ConfigFilePerm = core.PermOwnerRW

// Config is the main configuration structure for autoversion.
type Config struct {
	// Root is the documentation tree root, relative to the working directory.
	Root string `yaml:"root"`

	// Extensions lists the documentation file extensions to process.
	Extensions []string `yaml:"extensions,omitempty"`

	// Exclude lists directory names skipped during traversal.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Root:       ".",
		Extensions: walker.DefaultExtensions,
		Exclude:    walker.DefaultExcludes,
	}
}

// LoadConfigFn and SaveConfigFn can be overridden in tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

func loadConfig() (*Config, error) {
	// Highest priority: ENV variable
	if envDir := os.Getenv("AUTOVERSION_DIR"); envDir != "" {
		cleanDir := filepath.Clean(envDir)
		if strings.Contains(cleanDir, "..") {
			return nil, fmt.Errorf("invalid AUTOVERSION_DIR: path traversal not allowed, use absolute path instead")
		}
		cfg := Default()
		cfg.Root = cleanDir
		return cfg, nil
	}

	// Second priority: YAML file
	data, err := os.ReadFile(ConfigFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to default
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = walker.DefaultExtensions
	}
	if len(cfg.Exclude) == 0 {
		cfg.Exclude = walker.DefaultExcludes
	}

	return &cfg, nil
}

// Load returns the effective configuration, falling back to Default when no
// config file is present.
func Load() (*Config, error) {
	cfg, err := LoadConfigFn()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}
