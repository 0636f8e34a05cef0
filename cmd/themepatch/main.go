package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "apply":
		cmdApply(args[1:])
	case "fixfmt":
		cmdFixFmt(args[1:])
	case "version", "--version":
		fmt.Printf("themepatch %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`themepatch - Retrofit the shared light/dark theme onto Thymeleaf templates

USAGE:
    themepatch <command> [options]

COMMANDS:
    apply     Inject the theme includes into templates using the Tailwind CDN
    fixfmt    Re-indent script tags run together with an injected include
    version   Show version
    help      Show this help

CONFIGURATION:
    Options come from flags or from a themepatch.yml in the working
    directory:

        root: ~/projects/elgransazon/src/main/resources/templates
        ext: .html
        ignore:
          - node_modules
          - .git

    Flags override file values. Run 'themepatch <command> --help' for
    the per-command options.

NOTES:
    Both commands are idempotent: templates already carrying the theme
    includes are skipped, and fixfmt only rewrites files with the
    run-together include/script adjacency. Per-file failures are
    reported and never abort the run.`)
}
