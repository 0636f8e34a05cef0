// Package diff renders unified-diff previews of planned in-place file
// rewrites, for dry runs.
package diff

import (
	"fmt"
	"strings"
)

// Rewrite is a planned in-place change to one file.
type Rewrite struct {
	Path string
	Old  string
	New  string
}

// Plan collects planned rewrites so a dry run can show them all at
// once.
type Plan struct {
	ops []Rewrite
}

// NewPlan creates an empty Plan
func NewPlan() *Plan {
	return &Plan{}
}

// Modify adds a planned rewrite of path from old to new content.
func (p *Plan) Modify(path, old, new string) {
	p.ops = append(p.ops, Rewrite{Path: path, Old: old, New: new})
}

// HasChanges returns true if any planned rewrite actually changes its
// file.
func (p *Plan) HasChanges() bool {
	for _, op := range p.ops {
		if op.Old != op.New {
			return true
		}
	}
	return false
}

// Preview displays the planned changes in unified diff format.
// Returns true if there are actual changes to show.
func (p *Plan) Preview() bool {
	red := "\033[31m"
	green := "\033[32m"
	reset := "\033[0m"

	hasChanges := false
	var output strings.Builder

	for _, op := range p.ops {
		if op.Old == op.New {
			continue
		}
		hasChanges = true

		output.WriteString(fmt.Sprintf("%s--- %s%s\n", red, op.Path, reset))
		output.WriteString(fmt.Sprintf("%s+++ %s%s\n", green, op.Path, reset))
		output.WriteString(unifiedDiff(op.Old, op.New))
		output.WriteString("\n")
	}

	if hasChanges {
		fmt.Print(output.String())
	}

	return hasChanges
}

// unifiedDiff generates a unified diff between old and new content
func unifiedDiff(old, new string) string {
	cyan := "\033[36m"
	green := "\033[32m"
	red := "\033[31m"
	reset := "\033[0m"

	oldLines := strings.Split(old, "\n")
	newLines := strings.Split(new, "\n")

	// Simple line-by-line diff with context
	var result strings.Builder
	contextLines := 3

	// Find changed regions
	type hunk struct {
		oldStart, oldCount int
		newStart, newCount int
		lines              []string // prefixed with ' ', '+', or '-'
	}

	var hunks []hunk
	var currentHunk *hunk

	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		if i < len(oldLines) && j < len(newLines) && oldLines[i] == newLines[j] {
			// Lines match - context line
			if currentHunk != nil {
				currentHunk.lines = append(currentHunk.lines, " "+oldLines[i])
				currentHunk.oldCount++
				currentHunk.newCount++
			}
			i++
			j++
		} else {
			// Lines differ - start or continue a hunk
			if currentHunk == nil {
				// Start new hunk with context
				start := max(0, i-contextLines)
				currentHunk = &hunk{
					oldStart: start + 1,
					newStart: max(0, j-contextLines) + 1,
				}
				// Add leading context
				for k := start; k < i; k++ {
					currentHunk.lines = append(currentHunk.lines, " "+oldLines[k])
					currentHunk.oldCount++
					currentHunk.newCount++
				}
			}

			// Find how many lines differ
			if i < len(oldLines) && (j >= len(newLines) || !containsAt(newLines, j, oldLines[i])) {
				// Line removed from old
				currentHunk.lines = append(currentHunk.lines, "-"+oldLines[i])
				currentHunk.oldCount++
				i++
			} else if j < len(newLines) {
				// Line added to new
				currentHunk.lines = append(currentHunk.lines, "+"+newLines[j])
				currentHunk.newCount++
				j++
			}
		}

		// Check if we should close the hunk (enough trailing context)
		if currentHunk != nil {
			trailingContext := 0
			for k := len(currentHunk.lines) - 1; k >= 0 && currentHunk.lines[k][0] == ' '; k-- {
				trailingContext++
			}
			if trailingContext >= contextLines && i < len(oldLines) {
				// Close hunk
				hunks = append(hunks, *currentHunk)
				currentHunk = nil
			}
		}
	}

	// Close final hunk
	if currentHunk != nil {
		hunks = append(hunks, *currentHunk)
	}

	// Format hunks
	for _, h := range hunks {
		result.WriteString(fmt.Sprintf("%s@@ -%d,%d +%d,%d @@%s\n",
			cyan, h.oldStart, h.oldCount, h.newStart, h.newCount, reset))
		for _, line := range h.lines {
			switch line[0] {
			case '+':
				result.WriteString(fmt.Sprintf("%s%s%s\n", green, line, reset))
			case '-':
				result.WriteString(fmt.Sprintf("%s%s%s\n", red, line, reset))
			default:
				result.WriteString(line + "\n")
			}
		}
	}

	return result.String()
}

func containsAt(lines []string, start int, target string) bool {
	for i := start; i < len(lines) && i < start+5; i++ {
		if lines[i] == target {
			return true
		}
	}
	return false
}
