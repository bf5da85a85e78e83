// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package targets

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// DefaultExt is the extension of script files found in directories.
const DefaultExt = ".vbs"

// Resolver expands patterns on a filesystem.
type Resolver struct {
	Fs  afero.Fs // Filesystem, the OS filesystem when nil
	Dir string   // Base for relative patterns
	Ext string   // Script extension for directory patterns, DefaultExt when empty
}

// Resolve expands patterns in order. A path reached by several patterns
// appears once, at its first position. Glob matches are sorted.
func (r Resolver) Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoTargets
	}

	fs := r.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	var (
		paths []string
		seen  = make(map[string]struct{})
		errs  *multierror.Error
	)

	for _, p := range patterns {
		matches, err := r.expand(fs, r.abs(p))
		if err == nil && len(matches) == 0 {
			err = ErrNoMatch
		}

		if err != nil {
			errs = multierror.Append(errs, &PatternError{Pattern: p, Err: err})
			continue
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}

			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	if errs != nil {
		errs.ErrorFormat = listFormat
		return nil, &TargetResolutionError{errs: errs}
	}

	return paths, nil
}

func (r Resolver) abs(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || r.Dir == "" {
		return filepath.Clean(p)
	}

	return filepath.Join(r.Dir, p)
}

func (r Resolver) ext() string {
	if r.Ext == "" {
		return DefaultExt
	}

	return r.Ext
}

// expand returns the files named by p. An existing path is taken literally,
// so a name such as "test[1].vbs" is never read as a pattern.
func (r Resolver) expand(fs afero.Fs, p string) ([]string, error) {
	info, err := fs.Stat(p)

	switch {
	case err == nil && info.IsDir():
		return r.list(fs, p)
	case err == nil:
		return []string{p}, nil
	case !errors.Is(err, afero.ErrFileNotFound):
		return nil, err
	case hasMeta(p):
		return r.glob(fs, p)
	default:
		return nil, ErrNoMatch
	}
}

// list returns the script files directly inside dir, sorted by name.
func (r Resolver) list(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), r.ext()) {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	return files, nil
}

func (r Resolver) glob(fs afero.Fs, pattern string) ([]string, error) {
	matches, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, err
	}

	files := matches[:0]

	for _, m := range matches {
		info, err := fs.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}

		files = append(files, m)
	}

	return files, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[`)
}
