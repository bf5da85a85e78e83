// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logpath turns a log file template into a concrete path.
//
// {DATETIME} becomes the run start time as yyyyMMdd-HHmmss. {ID} becomes the
// smallest positive integer for which the path does not exist yet. The existence
// check and the later file creation are separate steps, so two runs started at
// the same moment may pick the same path.
package logpath

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/afero"
)

const (
	// DateTimeToken is replaced by the formatted run start time.
	DateTimeToken = "{DATETIME}"
	// IDToken is replaced by the first free sequence number.
	IDToken = "{ID}"
	// DateTimeFormat is the layout used for DateTimeToken.
	DateTimeFormat = "20060102-150405"

	windowsInvalid = `<>:"|?*`
)

var (
	// ErrInvalidLogPath is returned when the resolved path contains characters the
	// platform does not allow.
	ErrInvalidLogPath = errors.New("invalid log file path")
	// ErrLogPathCheck is returned when it cannot be told whether a path exists.
	ErrLogPathCheck = errors.New("cannot check whether the log file exists")
)

// InvalidLogPathError describes the offending template.
type InvalidLogPathError struct {
	Template string
	Char     rune
}

// Error implements the error interface.
func (e *InvalidLogPathError) Error() string {
	return fmt.Sprintf("%v: %q contains %q", ErrInvalidLogPath, e.Template, e.Char)
}

// Unwrap returns ErrInvalidLogPath.
func (e *InvalidLogPathError) Unwrap() error {
	return ErrInvalidLogPath
}

// Resolve expands template. now is used for {DATETIME} and fs for the {ID} existence check.
func Resolve(fs afero.Fs, template string, now time.Time) (string, error) {
	return resolve(fs, template, now, runtime.GOOS)
}

func resolve(fs afero.Fs, template string, now time.Time, goos string) (string, error) {
	path := strings.ReplaceAll(template, DateTimeToken, now.Format(DateTimeFormat))

	if r, ok := invalidChar(strings.ReplaceAll(path, IDToken, "1"), goos); ok {
		return "", &InvalidLogPathError{Template: template, Char: r}
	}

	if !strings.Contains(path, IDToken) {
		return path, nil
	}

	for id := 1; ; id++ {
		candidate := strings.ReplaceAll(path, IDToken, strconv.Itoa(id))
		_, err := fs.Stat(candidate)

		switch {
		case err == nil:
			continue
		case errors.Is(err, afero.ErrFileNotFound):
			return candidate, nil
		default:
			return "", errors.Join(ErrLogPathCheck, err)
		}
	}
}

func invalidChar(path string, goos string) (rune, bool) {
	for i, r := range path {
		if r == 0 {
			return r, true
		}

		if goos != "windows" {
			continue
		}

		if r == ':' && i == 1 && isDriveLetter(path[0]) {
			continue
		}

		if unicode.IsControl(r) || strings.ContainsRune(windowsInvalid, r) {
			return r, true
		}
	}

	return 0, false
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
