package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/aatechsolutions/themepatch/internal/config"
	"github.com/aatechsolutions/themepatch/internal/diff"
	"github.com/aatechsolutions/themepatch/internal/inject"
	"github.com/aatechsolutions/themepatch/internal/scan"
	"github.com/aatechsolutions/themepatch/internal/watch"
)

// cmdApply handles the 'apply' command
func cmdApply(args []string) {
	if checkHelpFlag(args, `themepatch apply - Inject the theme includes into Tailwind templates

USAGE:
    themepatch apply [options]

OPTIONS:
    -config <path>   Config file (default: ./themepatch.yml)
    -root <dir>      Templates directory (overrides config)
    -ext <ext>       Template extension (default: .html)
    -dry-run         Show a diff of planned changes, write nothing
    -watch           Keep running and re-apply on template changes

Each template that loads Tailwind from the CDN gets a themeResources
include after its Material Symbols stylesheet link and a themeScript
include before </body>. Templates already carrying the includes are
skipped.`) {
		os.Exit(0)
	}

	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	var (
		configPath string
		root       string
		ext        string
		dryRun     bool
		watchMode  bool
	)
	fs.StringVar(&configPath, "config", "", "Config file path")
	fs.StringVar(&root, "root", "", "Templates directory")
	fs.StringVar(&ext, "ext", "", "Template file extension")
	fs.BoolVar(&dryRun, "dry-run", false, "Preview changes without writing")
	fs.BoolVar(&watchMode, "watch", false, "Re-apply on template changes")
	fs.Parse(args)

	fsys := afero.NewOsFs()
	cfg, err := loadConfig(fsys, configPath, root, ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runApply(fsys, cfg, dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if watchMode && !dryRun {
		if err := watchApply(fsys, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runApply performs one injection pass over the configured tree.
func runApply(fsys afero.Fs, cfg *config.Config, dryRun bool) error {
	fmt.Printf("Scanning %s for Tailwind templates...\n", cfg.Root)

	opts := scan.Options{Ext: cfg.Ext, Ignore: cfg.Ignore}
	files, readErrs, err := scan.Candidates(fsys, cfg.Root, inject.CDNPattern, opts)
	if err != nil {
		return err
	}
	for _, re := range readErrs {
		fmt.Printf("%s %s: %v\n", symErr, relPath(cfg.Root, re.Path), re.Err)
	}
	fmt.Printf("Found %d templates using the Tailwind CDN\n\n", len(files))

	var plan *diff.Plan
	if dryRun {
		plan = diff.NewPlan()
	}

	var tally inject.Tally
	for _, path := range files {
		var o inject.Outcome
		if dryRun {
			old, patched, out := inject.Preview(fsys, path)
			if out.Status == inject.Updated {
				plan.Modify(path, old, patched)
			}
			o = out
		} else {
			o = inject.File(fsys, path)
		}
		tally.Add(o)
		printOutcome(cfg.Root, o)
	}

	if dryRun && plan.HasChanges() {
		fmt.Println()
		plan.Preview()
	}

	fmt.Println()
	if dryRun {
		fmt.Printf("Would update: %d  Skipped: %d  Errors: %d\n",
			tally.Updated, tally.Skipped, tally.Errors)
	} else {
		fmt.Printf("Updated: %d  Skipped: %d  Errors: %d\n",
			tally.Updated, tally.Skipped, tally.Errors)
	}
	return nil
}

// watchApply re-runs the injector on changed templates until
// interrupted. The injector's idempotence guard makes re-processing a
// just-written file a no-op.
func watchApply(fsys afero.Fs, cfg *config.Config) error {
	w, err := watch.New(cfg.Root, func(changed []string) {
		for _, path := range changed {
			if !strings.HasSuffix(path, cfg.Ext) {
				continue
			}
			content, err := scan.ReadText(fsys, path)
			if err != nil || !inject.CDNPattern.MatchString(content) {
				continue
			}
			o := inject.File(fsys, path)
			if o.Status == inject.Updated || o.Status == inject.Failed {
				printOutcome(cfg.Root, o)
			}
		}
	})
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	fmt.Println("\nWatching for template changes (Ctrl-C to stop)...")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nStopping.")
	return nil
}

func printOutcome(root string, o inject.Outcome) {
	path := relPath(root, o.Path)
	switch o.Status {
	case inject.Updated:
		fmt.Printf("%s %s (%s)\n", symOK, path, insertedParts(o))
	case inject.SkippedPresent:
		fmt.Printf("%s %s (already present)\n", symSkip, path)
	case inject.SkippedUnmatched:
		fmt.Printf("%s %s (structure not matched)\n", symSkip, path)
	case inject.Failed:
		fmt.Printf("%s %s: %v\n", symErr, path, o.Err)
	}
}

func insertedParts(o inject.Outcome) string {
	switch {
	case o.Head && o.Body:
		return "head+body"
	case o.Head:
		return "head"
	default:
		return "body"
	}
}
