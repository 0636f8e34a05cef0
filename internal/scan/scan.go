// Package scan enumerates template files under a directory tree and
// filters them by content pattern.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// Options control a tree walk.
type Options struct {
	Ext    string   // file extension filter, e.g. ".html"
	Ignore []string // directory base names to skip entirely
}

// ReadError records a file that could not be read as text.
type ReadError struct {
	Path string
	Err  error
}

// Walk returns every regular file under root whose name ends in
// opts.Ext, in traversal order. Directories listed in opts.Ignore are
// skipped.
func Walk(fsys afero.Fs, root string, opts Options) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && ignored(filepath.Base(path), opts.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), opts.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// Candidates returns the files under root whose content matches
// pattern. Files that cannot be read or are not valid UTF-8 are
// reported in errs and left out; the walk itself continues.
func Candidates(fsys afero.Fs, root string, pattern *regexp.Regexp, opts Options) (files []string, errs []ReadError, err error) {
	all, err := Walk(fsys, root, opts)
	if err != nil {
		return nil, nil, err
	}
	for _, path := range all {
		content, rerr := ReadText(fsys, path)
		if rerr != nil {
			errs = append(errs, ReadError{Path: path, Err: rerr})
			continue
		}
		if pattern.MatchString(content) {
			files = append(files, path)
		}
	}
	return files, errs, nil
}

// ReadText reads path and verifies it decodes as UTF-8 text.
func ReadText(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("not valid UTF-8 text")
	}
	return string(data), nil
}

func ignored(name string, ignore []string) bool {
	for _, ig := range ignore {
		if name == ig {
			return true
		}
	}
	return false
}
