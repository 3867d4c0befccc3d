// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package youtube validates YouTube links and looks up video preview metadata.
package youtube

import (
	"regexp"
	"strings"
)

// VideoIDLength is the length of every YouTube video id.
const VideoIDLength = 11

var (
	// urlPattern accepts youtube.com and youtu.be links with a non-empty path.
	urlPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

	// idPattern captures the id after any of the known link forms.
	idPattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

// IsValidURL reports whether s looks like a YouTube link.
// Surrounding whitespace is ignored.
func IsValidURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

// ExtractVideoID returns the 11-character video id embedded in s.
// Any capture of a different length is not an id.
func ExtractVideoID(s string) (string, bool) {
	m := idPattern.FindStringSubmatch(s)
	if m == nil || len(m[2]) != VideoIDLength {
		return "", false
	}
	return m[2], true
}
