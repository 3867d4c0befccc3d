// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// formatTimestamp shows the clock time for today's messages, the weekday
// within a week and the date beyond that.
func formatTimestamp(t, now time.Time) string {
	layout := "Jan 2 15:04"
	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		layout = "15:04"
	case now.Sub(t) < 7*24*time.Hour:
		layout = "Mon 15:04"
	}
	return t.Format(layout)
}

// wrapText word-wraps user text to width cells. Words longer than a line
// are broken.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}
