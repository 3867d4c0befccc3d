// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/mmq-tui/internal/util"
)

// FallbackRunes is how much of the text is shown when it cannot be copied.
const FallbackRunes = 500

// FallbackHint follows a truncated fallback.
const FallbackHint = "(Select the text to copy it manually)"

// ErrNothingToShare is returned for blank text.
var ErrNothingToShare = errors.New("nothing to share")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// ShareResult reports how a share went.
type ShareResult struct {
	// Copied is true when the text is on the clipboard.
	Copied bool
	// Fallback is the text to display when copying failed.
	Fallback string
	// Err is the clipboard error, if any.
	Err error
}

// Share copies text to the system clipboard. When the clipboard is not
// available the result carries the text to show instead, cut to
// FallbackRunes runes with a hint.
func Share(text string) ShareResult {
	if strings.TrimSpace(text) == "" {
		return ShareResult{Err: ErrNothingToShare}
	}

	var err error
	if clipboard.Unsupported {
		err = errors.New("clipboard is not supported on this system")
	} else {
		err = writeClipboard(text)
	}
	if err == nil {
		return ShareResult{Copied: true}
	}
	return ShareResult{Fallback: FallbackText(text), Err: err}
}

// FallbackText returns text as shown when it cannot be copied.
func FallbackText(text string) string {
	if util.RuneLen(text) <= FallbackRunes {
		return text
	}
	return util.Ellipsize(text, FallbackRunes) + "\n\n" + FallbackHint
}
