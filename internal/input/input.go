// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package input normalizes and validates user input before it reaches a screen.
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// ERRORS
// =============================================================================

// Validation errors. None of these ever reach the gateway.
var (
	ErrEmpty      = errors.New("input is empty")
	ErrInvalidURL = errors.New("not a valid YouTube URL")
	ErrNotImage   = errors.New("file is not a supported image")
)

// ImageError describes why an image could not be attached.
type ImageError struct {
	Path  string
	Cause error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("cannot attach %s: %v", filepath.Base(e.Path), e.Cause)
}

func (e *ImageError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// TEXT
// =============================================================================

// Normalize returns s in Unicode NFC form.
// Composed and decomposed spellings of the same text then compare equal.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// =============================================================================
// IMAGES
// =============================================================================

// ImageExtensions lists the accepted image file extensions.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".heic"}

// IsImagePath reports whether path has an accepted image extension.
func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ResolveImage validates a local image reference and returns its absolute path.
// The file must exist and be a regular file with an image extension.
// The file contents are never read.
func ResolveImage(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmpty
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ImageError{Path: path, Cause: err}
	}
	if !IsImagePath(abs) {
		return "", &ImageError{Path: abs, Cause: ErrNotImage}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ImageError{Path: abs, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return "", &ImageError{Path: abs, Cause: ErrNotImage}
	}
	return abs, nil
}
