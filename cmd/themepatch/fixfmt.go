package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/aatechsolutions/themepatch/internal/config"
	"github.com/aatechsolutions/themepatch/internal/diff"
	"github.com/aatechsolutions/themepatch/internal/htmlfix"
	"github.com/aatechsolutions/themepatch/internal/scan"
)

// cmdFixFmt handles the 'fixfmt' command
func cmdFixFmt(args []string) {
	if checkHelpFlag(args, `themepatch fixfmt - Re-indent script tags run together with an include

USAGE:
    themepatch fixfmt [options]

OPTIONS:
    -config <path>   Config file (default: ./themepatch.yml)
    -root <dir>      Templates directory (overrides config)
    -ext <ext>       Template extension (default: .html)
    -dry-run         Show a diff of planned changes, write nothing

Repairs templates where the themeResources closing </div> is followed
by a <script> tag on an unindented line, putting the script tag on its
own four-space-indented line. All other files are left untouched.`) {
		os.Exit(0)
	}

	fs := flag.NewFlagSet("fixfmt", flag.ExitOnError)
	var (
		configPath string
		root       string
		ext        string
		dryRun     bool
	)
	fs.StringVar(&configPath, "config", "", "Config file path")
	fs.StringVar(&root, "root", "", "Templates directory")
	fs.StringVar(&ext, "ext", "", "Template file extension")
	fs.BoolVar(&dryRun, "dry-run", false, "Preview changes without writing")
	fs.Parse(args)

	fsys := afero.NewOsFs()
	cfg, err := loadConfig(fsys, configPath, root, ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runFixFmt(fsys, cfg, dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runFixFmt repairs the run-together include/script adjacency across
// every template under the configured root.
func runFixFmt(fsys afero.Fs, cfg *config.Config, dryRun bool) error {
	files, err := scan.Walk(fsys, cfg.Root, scan.Options{Ext: cfg.Ext, Ignore: cfg.Ignore})
	if err != nil {
		return err
	}

	var plan *diff.Plan
	if dryRun {
		plan = diff.NewPlan()
	}

	fixed := 0
	for _, path := range files {
		rel := relPath(cfg.Root, path)

		if dryRun {
			old, repaired, wouldFix, err := htmlfix.Preview(fsys, path)
			if err != nil {
				fmt.Printf("%s %s: %v\n", symErr, rel, err)
				continue
			}
			if wouldFix {
				plan.Modify(path, old, repaired)
				fixed++
				fmt.Printf("%s %s (would re-indent)\n", symOK, rel)
			} else {
				fmt.Printf("%s %s (OK)\n", symSkip, rel)
			}
			continue
		}

		ok, err := htmlfix.File(fsys, path)
		if err != nil {
			fmt.Printf("%s %s: %v\n", symErr, rel, err)
			continue
		}
		if ok {
			fixed++
			fmt.Printf("%s %s (re-indented)\n", symOK, rel)
		} else {
			fmt.Printf("%s %s (OK)\n", symSkip, rel)
		}
	}

	if dryRun && plan.HasChanges() {
		fmt.Println()
		plan.Preview()
	}

	fmt.Println()
	if dryRun {
		fmt.Printf("Would fix: %d\n", fixed)
	} else {
		fmt.Printf("Fixed: %d\n", fixed)
	}
	return nil
}
