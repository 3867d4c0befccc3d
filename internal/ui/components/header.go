// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
	"github.com/jeranaias/mmq-tui/internal/util"
)

// Brand is the name shown at the left of every header.
const Brand = "mmq"

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the one-line title bar of a screen.
type Header struct {
	Title string // Screen title, e.g. "Multi-Modal Query"
	State model.RequestState
	Width int
	theme *styles.Theme
}

// NewHeader creates a header for a screen.
func NewHeader(theme *styles.Theme, title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetState updates the request state badge.
func (h *Header) SetState(state model.RequestState) {
	h.State = state
}

// View renders "< mmq >  Title" with the request state on the right.
func (h *Header) View() string {
	accent := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accent.Render("< ") + h.theme.HeaderBrand.Render(Brand) + accent.Render(" >")

	badgeStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	if h.State == model.StateInFlight {
		badgeStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	}
	right := badgeStyle.Render("[" + h.State.String() + "]")

	inner := h.Width - 2
	room := inner - lipgloss.Width(brand) - lipgloss.Width(right) - 3
	title := h.Title
	if room < util.StringWidth(title) {
		title = util.TruncateWidth(title, max(room, 0))
	}

	left := brand
	if title != "" {
		left += "  " + h.theme.HeaderTitle.Render(title)
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(max(h.Width, 1)).Render(left + strings.Repeat(" ", gap) + right)
}
