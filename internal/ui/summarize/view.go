// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package summarize

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
	"github.com/jeranaias/mmq-tui/internal/util"
)

// View renders header, URL input, preview card, result, spinner, toasts and
// key help.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{m.header.View(), m.renderInput()}
	if card := m.renderPreview(); card != "" {
		parts = append(parts, card)
	}
	parts = append(parts, m.theme.ResultLabel.Render("Summary"), m.result.View())
	if s := m.spinner.View(); s != "" {
		parts = append(parts, s)
	}
	if t := m.renderToasts(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Render(m.urlInput.View())
}

// renderPreview shows title, channel and links of the previewed video.
// Terminals cannot show the thumbnail, so its URL is listed instead.
func (m Model) renderPreview() string {
	p := m.state.View().Preview
	if p == nil {
		return ""
	}
	width := m.theme.ContentWidth() - 4

	lines := []string{
		m.theme.PreviewTitle.Render(util.TruncateWidth(p.Title, width)),
	}
	if p.Author != "" {
		lines = append(lines, m.theme.PreviewAuthor.Render(util.TruncateWidth(p.Author, width)))
	}
	lines = append(lines,
		styles.RenderLink(p.WatchURL()),
		m.theme.Muted.Render(util.TruncateWidth("Thumbnail: "+p.ThumbnailURL, width)),
	)
	return m.theme.PreviewCard.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderToasts() string {
	return components.RenderToastStack(m.toasts.Toasts(), m.width)
}

func (m Model) renderStatus() string {
	return m.help.View(m.keyMap)
}
