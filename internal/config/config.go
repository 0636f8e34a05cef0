// Package config loads themepatch settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
// when no -config flag is given.
const DefaultFile = "themepatch.yml"

// DefaultExt is the template file extension when none is configured.
const DefaultExt = ".html"

// Config holds the tool configuration. Flag values override anything
// loaded from file.
type Config struct {
	Root   string   `yaml:"root"`   // templates directory to patch
	Ext    string   `yaml:"ext"`    // template file extension
	Ignore []string `yaml:"ignore"` // directory names to skip while walking
}

// Load reads the YAML config at path. A missing file is not an error
// when path is the default location; an explicitly named file must
// exist.
func Load(fsys afero.Fs, path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Root = ExpandHome(cfg.Root)
	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks that the configuration names a usable template root.
func (c *Config) Validate(fsys afero.Fs) error {
	if c.Root == "" {
		return fmt.Errorf("no templates root configured; pass -root or set root in %s", DefaultFile)
	}
	info, err := fsys.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("templates root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("templates root %s is not a directory", c.Root)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Ext == "" {
		c.Ext = DefaultExt
	}
	if !strings.HasPrefix(c.Ext, ".") {
		c.Ext = "." + c.Ext
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
