package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/aatechsolutions/themepatch/internal/config"
)

// ANSI color codes
const (
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorReset = "\033[0m"
)

// Status-symbol prefixes for the per-file trace.
var (
	symOK   = colorGreen + "✓" + colorReset
	symSkip = colorGray + "-" + colorReset
	symErr  = colorRed + "✗" + colorReset
)

// checkHelpFlag checks if any argument is a help flag and prints usage if so.
// Returns true if help was requested (and program should exit).
func checkHelpFlag(args []string, usage string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" || arg == "help" {
			fmt.Println(usage)
			return true
		}
	}
	return false
}

// loadConfig resolves the effective configuration from the optional
// YAML file plus flag overrides.
func loadConfig(fsys afero.Fs, configPath, rootFlag, extFlag string) (*config.Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = config.DefaultFile
	}

	cfg, err := config.Load(fsys, configPath, explicit)
	if err != nil {
		return nil, err
	}

	if rootFlag != "" {
		cfg.Root = config.ExpandHome(rootFlag)
	}
	if extFlag != "" {
		cfg.Ext = extFlag
		if extFlag[0] != '.' {
			cfg.Ext = "." + extFlag
		}
	}

	if err := cfg.Validate(fsys); err != nil {
		return nil, err
	}
	return cfg, nil
}

// relPath shortens path for display by making it relative to root.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
