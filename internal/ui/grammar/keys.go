// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the grammar screen.
type KeyMap struct {
	Submit  key.Binding
	Newline key.Binding
	Clear   key.Binding
	Copy    key.Binding
	Export  key.Binding
	Back    key.Binding
	Help    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "check")),
		Newline: key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("A-Enter", "new line")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "clear")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("C-y", "copy result")),
		Export:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("C-e", "export")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "more keys")),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.Back, k.Help}
}

// FullHelp returns the bindings shown when help is expanded.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.Clear},
		{k.Copy, k.Export},
		{k.Back, k.Help},
	}
}
