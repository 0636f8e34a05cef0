// Package inject splices the shared theme-system includes into
// Thymeleaf templates that load Tailwind CSS from its CDN.
//
// The anchors are deliberately the same fragile text patterns the
// templates were originally patched with: the Material Symbols
// stylesheet link marks the head insertion point, and the last
// script/body closing-tag adjacency marks the body insertion point.
package inject

import (
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/aatechsolutions/themepatch/internal/scan"
)

// CDNPattern matches templates that load Tailwind from the CDN. Only
// files matching it are injection candidates.
var CDNPattern = regexp.MustCompile(`cdn\.tailwindcss\.com`)

// Markers identifying a template that already carries the theme system.
const (
	ResourcesMarker = "fragments/theme :: themeResources"
	ScriptMarker    = "fragments/theme :: themeScript"
)

// The fragment names reference fragments/theme, which the target
// application must provide for the injected markup to render.
const (
	resourcesSnippet = `    <!-- Theme system (light/dark mode) -->
    <div th:replace="~{fragments/theme :: themeResources}"></div>`

	scriptSnippet = `
    <!-- Theme system script -->
    <div th:replace="~{fragments/theme :: themeScript}"></div>`
)

var (
	headAnchor = regexp.MustCompile(`(?s)Material\+Symbols\+Outlined.*?rel="stylesheet"\s*/?>\s*`)
	bodyAnchor = regexp.MustCompile(`(?is)</script>\s*(</body>)`)
)

// Status classifies the outcome for a single file.
type Status int

const (
	Updated          Status = iota // at least one snippet inserted and saved
	SkippedPresent                 // resource marker already there
	SkippedUnmatched               // neither anchor found
	Failed                         // read or write error
)

// Outcome describes what happened to one file.
type Outcome struct {
	Path   string
	Status Status
	Head   bool // resources include added in <head>
	Body   bool // script include added before </body>
	Err    error
}

// Tally accumulates outcomes across a run.
type Tally struct {
	Updated int
	Skipped int
	Errors  int
}

// Add counts o into the tally.
func (t *Tally) Add(o Outcome) {
	switch o.Status {
	case Updated:
		t.Updated++
	case Failed:
		t.Errors++
	default:
		t.Skipped++
	}
}

// Rewrite returns content with the theme includes spliced in. The two
// insertions are independent: a missing anchor skips that insertion
// without affecting the other.
func Rewrite(content string) (patched string, head, body bool) {
	patched = content

	if loc := headAnchor.FindStringIndex(patched); loc != nil {
		patched = patched[:loc[1]] + "\n" + resourcesSnippet + "\n" + patched[loc[1]:]
		head = true
	}

	if !strings.Contains(patched, ScriptMarker) {
		if m := lastMatch(bodyAnchor, patched); m != nil {
			at := m[2] // start of </body>
			patched = patched[:at] + scriptSnippet + "\n  " + patched[at:]
			body = true
		}
	}

	return patched, head, body
}

// File applies the theme patch to path in place. It never panics and
// never aborts a run: every failure is folded into the Outcome.
func File(fsys afero.Fs, path string) Outcome {
	content, err := scan.ReadText(fsys, path)
	if err != nil {
		return Outcome{Path: path, Status: Failed, Err: err}
	}

	if strings.Contains(content, ResourcesMarker) {
		return Outcome{Path: path, Status: SkippedPresent}
	}

	patched, head, body := Rewrite(content)
	if !head && !body {
		return Outcome{Path: path, Status: SkippedUnmatched}
	}

	if err := afero.WriteFile(fsys, path, []byte(patched), 0644); err != nil {
		return Outcome{Path: path, Status: Failed, Err: err}
	}
	return Outcome{Path: path, Status: Updated, Head: head, Body: body}
}

// Preview computes the patch without writing anything.
func Preview(fsys afero.Fs, path string) (old, patched string, o Outcome) {
	old, err := scan.ReadText(fsys, path)
	if err != nil {
		return "", "", Outcome{Path: path, Status: Failed, Err: err}
	}

	if strings.Contains(old, ResourcesMarker) {
		return old, old, Outcome{Path: path, Status: SkippedPresent}
	}

	patched, head, body := Rewrite(old)
	if !head && !body {
		return old, old, Outcome{Path: path, Status: SkippedUnmatched}
	}
	return old, patched, Outcome{Path: path, Status: Updated, Head: head, Body: body}
}

// lastMatch returns the submatch indexes of the final occurrence of re
// in s, or nil. The body anchor must bind to the last script block
// before </body>, not the first one in the document.
func lastMatch(re *regexp.Regexp, s string) []int {
	all := re.FindAllStringSubmatchIndex(s, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}
