// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the screen top to bottom: header, messages, spinner,
// pending image, input, toasts, key help.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{m.header.View(), m.viewport.View()}
	if s := m.spinner.View(); s != "" {
		parts = append(parts, s)
	}
	if bar := m.renderImageBar(); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.renderInput())
	if t := m.renderToasts(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInput() string {
	if m.attaching {
		return m.theme.InputContainer.Render(m.imageInput.View())
	}
	return m.theme.InputContainer.Render(m.composer.View())
}

func (m Model) renderImageBar() string {
	ref := m.chat.PendingImage()
	if ref == "" {
		return ""
	}
	return m.theme.ImageBar.Render(styles.StatusIndicators.Image + " " + filepath.Base(ref) + "  (C-x to remove)")
}

func (m Model) renderToasts() string {
	return components.RenderToastStack(m.toasts.Toasts(), m.width)
}

func (m Model) renderStatus() string {
	return m.help.View(m.keyMap)
}

// =============================================================================
// MESSAGES
// =============================================================================

func (m Model) renderMessages() string {
	msgs := m.chat.Messages()
	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if r := m.renderMessage(msg); r != "" {
			rendered = append(rendered, r)
		}
	}
	return strings.Join(rendered, "\n\n")
}

func (m Model) renderMessage(msg model.Message) string {
	if msg.IsUser() {
		return m.renderUserMessage(msg)
	}
	return m.renderAssistantMessage(msg)
}

// renderUserMessage right-aligns the bubble, with the image above the text.
func (m Model) renderUserMessage(msg model.Message) string {
	width := m.theme.BubbleWidth()

	var body []string
	if msg.HasImage() {
		body = append(body, m.theme.ImageBar.Render(styles.StatusIndicators.Image+" "+msg.ImageName()))
	}
	if strings.TrimSpace(msg.Content) != "" {
		body = append(body, m.theme.UserBubble.Render(wrapText(msg.Content, width-4)))
	}
	body = append(body, m.renderMeta(msg))

	block := lipgloss.JoinVertical(lipgloss.Right, body...)
	return lipgloss.PlaceHorizontal(m.theme.ContentWidth(), lipgloss.Right, block)
}

func (m Model) renderAssistantMessage(msg model.Message) string {
	bubble := m.theme.AssistantBubble.Render(m.markdown.Render(msg.Content))
	return lipgloss.JoinVertical(lipgloss.Left, bubble, m.renderMeta(msg))
}

func (m Model) renderMeta(msg model.Message) string {
	meta := msg.Role.DisplayName()
	if m.opts.ShowTimestamps && !msg.Timestamp.IsZero() {
		meta += " · " + formatTimestamp(msg.Timestamp, m.now())
	}
	return m.theme.MessageMeta.Render(meta)
}
