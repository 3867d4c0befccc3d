// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/config"
	"github.com/jeranaias/mmq-tui/internal/ui/chat"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/grammar"
	"github.com/jeranaias/mmq-tui/internal/ui/summarize"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("MMQ_HOME", t.TempDir())
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	return NewApp(cfg, nil, false)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func TestApp_MenuNavigation(t *testing.T) {
	a := newTestApp(t)

	send(a, keyMsg("down"))
	if a.menu.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", a.menu.Cursor())
	}
	send(a, keyMsg("up"))
	send(a, keyMsg("up"))
	if a.menu.Cursor() != 3 {
		t.Errorf("cursor should wrap to the last item, got %d", a.menu.Cursor())
	}

	send(a, keyMsg("enter"))
	if _, ok := a.active.(grammar.Model); !ok {
		t.Fatalf("enter on item 4 should open the grammar screen, got %T", a.active)
	}
}

func TestApp_JumpOpensFeature(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"1", "chat.Model"},
		{"2", "summarize.Model"},
		{"3", "summarize.Model"},
		{"4", "grammar.Model"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			a := newTestApp(t)
			send(a, keyMsg(tt.key))
			switch a.active.(type) {
			case chat.Model:
				if tt.want != "chat.Model" {
					t.Errorf("got chat, want %s", tt.want)
				}
			case summarize.Model:
				if tt.want != "summarize.Model" {
					t.Errorf("got summarize, want %s", tt.want)
				}
			case grammar.Model:
				if tt.want != "grammar.Model" {
					t.Errorf("got grammar, want %s", tt.want)
				}
			default:
				t.Fatalf("no screen mounted for %q", tt.key)
			}
		})
	}
}

func TestApp_ClassicVariantTitle(t *testing.T) {
	a := newTestApp(t)
	send(a, tea.WindowSizeMsg{Width: 100, Height: 40})
	send(a, keyMsg("3"))
	if !strings.Contains(a.View(), "YouTube Summarizer (classic)") {
		t.Error("item 3 should mount the classic summarizer")
	}
}

func TestApp_BackReturnsToMenu(t *testing.T) {
	a := newTestApp(t)
	send(a, keyMsg("1"))
	first := a.active.ID()

	// A stale screen's back request is ignored.
	send(a, components.BackMsg{ScreenID: uuid.New()})
	if a.active == nil {
		t.Fatal("foreign BackMsg unmounted the screen")
	}

	cmd := send(a, keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should request going back")
	}
	send(a, cmd())
	if a.active != nil {
		t.Fatal("screen still mounted after back")
	}
	if !strings.Contains(a.View(), chat.Title) {
		t.Error("menu should list the features")
	}

	send(a, keyMsg("1"))
	if a.active.ID() == first {
		t.Error("reopening a feature should mount a fresh screen")
	}
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t)
	send(a, keyMsg("2"))

	cmd := send(a, keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if a.active != nil {
		t.Error("quitting should close the mounted screen")
	}
}

func TestApp_ConfigReload(t *testing.T) {
	a := newTestApp(t)

	send(a, configReloadedMsg{err: errors.New("invalid config: bad\nmore")})
	if !strings.Contains(a.View(), "Config not reloaded: invalid config: bad") {
		t.Error("reload failure should be shown on the menu")
	}

	next := config.Default()
	next.UI.Theme = "light"
	next.Preview.Enabled = false
	send(a, keyMsg("2"))
	send(a, configReloadedMsg{cfg: next})

	if a.cfg != next {
		t.Error("reloaded config not stored")
	}
	if a.theme.IsDark {
		t.Error("theme should follow the reloaded config")
	}
	if a.preview != nil {
		t.Error("disabled previews should leave no preview client")
	}
	if a.active == nil {
		t.Error("a reload must not unmount the screen")
	}
}
