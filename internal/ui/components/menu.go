// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// MenuItem is one entry of the features menu.
type MenuItem struct {
	Title       string
	Description string
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items  []MenuItem
	cursor int
	theme  *styles.Theme
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(theme *styles.Theme, items []MenuItem) *Menu {
	return &Menu{Items: items, theme: theme}
}

// Up moves the cursor up, wrapping to the bottom.
func (m *Menu) Up() {
	if len(m.Items) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.Items)) % len(m.Items)
}

// Down moves the cursor down, wrapping to the top.
func (m *Menu) Down() {
	if len(m.Items) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.Items)
}

// Select moves the cursor to index i if it is in range.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= len(m.Items) {
		return false
	}
	m.cursor = i
	return true
}

// Cursor returns the selected index.
func (m *Menu) Cursor() int {
	return m.cursor
}

// View renders the menu inside a box.
func (m *Menu) View() string {
	var sb strings.Builder
	for i, item := range m.Items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := string(rune('1'+i)) + ". " + item.Title
		if i == m.cursor {
			sb.WriteString(m.theme.MenuSelected.Render("> " + label))
		} else {
			sb.WriteString(m.theme.MenuItem.Render("  " + label))
		}
		if item.Description != "" {
			sb.WriteString("\n")
			sb.WriteString(m.theme.MenuDesc.Render(item.Description))
		}
	}
	return m.theme.MenuBox.Render(sb.String())
}
