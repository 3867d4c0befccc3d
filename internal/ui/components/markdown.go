// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders assistant replies and summaries with glamour.
//
// The renderer is rebuilt when the width or style changes. If glamour fails,
// the text is returned unchanged so a reply is never lost.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style
// ("dark", "light", "notty") wrapping at width. Width 0 disables wrapping.
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{style: style, width: width}
	m.rebuild()
	return m
}

func (m *Markdown) rebuild() {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(m.style)}
	if m.width > 0 {
		opts = append(opts, glamour.WithWordWrap(m.width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Width returns the wrap width.
func (m *Markdown) Width() int {
	return m.width
}

// Style returns the glamour style name.
func (m *Markdown) Style() string {
	return m.style
}

// SetWidth changes the wrap width.
func (m *Markdown) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.rebuild()
}

// SetStyle changes the glamour style.
func (m *Markdown) SetStyle(style string) {
	if style == m.style {
		return
	}
	m.style = style
	m.rebuild()
}

// Render renders text as markdown, trimmed of glamour's outer blank lines.
func (m *Markdown) Render(text string) string {
	if m.renderer == nil || strings.TrimSpace(text) == "" {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
