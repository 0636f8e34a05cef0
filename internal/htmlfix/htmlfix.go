// Package htmlfix repairs a formatting defect the theme injector could
// leave behind: the themeResources include's closing </div> run
// together with the next <script> tag on a new, unindented line.
package htmlfix

import (
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/aatechsolutions/themepatch/internal/scan"
)

const closingDiv = `themeResources}"></div>`

var adjacency = regexp.MustCompile(`(themeResources}"></div>)\s*\n\s*(<script)`)

// Broken reports whether content contains the run-together adjacency,
// with either Unix or Windows line endings.
func Broken(content string) bool {
	return strings.Contains(content, closingDiv+"\n<script") ||
		strings.Contains(content, closingDiv+"\r\n<script")
}

// Repair puts the script tag on its own indented line.
func Repair(content string) string {
	return adjacency.ReplaceAllString(content, "$1\n    $2")
}

// File repairs path in place. fixed reports whether the file was
// rewritten; files without the adjacency are left byte-for-byte
// untouched.
func File(fsys afero.Fs, path string) (fixed bool, err error) {
	content, err := scan.ReadText(fsys, path)
	if err != nil {
		return false, err
	}
	if !Broken(content) {
		return false, nil
	}
	if err := afero.WriteFile(fsys, path, []byte(Repair(content)), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Preview computes the repair without writing anything.
func Preview(fsys afero.Fs, path string) (old, repaired string, fixed bool, err error) {
	old, err = scan.ReadText(fsys, path)
	if err != nil {
		return "", "", false, err
	}
	if !Broken(old) {
		return old, old, false, nil
	}
	return old, Repair(old), true, nil
}
