// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	checker "github.com/jeranaias/mmq-tui/internal/grammar"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

type failingChecker struct{}

func (failingChecker) Check(context.Context, string) (string, error) {
	return "", errors.New("service unavailable")
}

func newTestModel(t *testing.T, c checker.Checker) Model {
	t.Helper()
	m := New(styles.NewTheme(styles.ModeLight), Options{Checker: c, ExportDir: t.TempDir()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	return next.(Model)
}

// check submits text and feeds the result back.
func check(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.editor.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.state.Busy() {
		t.Fatal("check should be in flight")
	}
	if !strings.Contains(m.View(), components.CheckingMessage) {
		t.Error("spinner should show while checking")
	}
	res, ok := findResult(cmd)
	if !ok {
		t.Fatal("no ResultMsg produced")
	}
	next, _ = m.Update(res)
	return next.(Model)
}

func findResult(cmd tea.Cmd) (ResultMsg, bool) {
	if cmd == nil {
		return ResultMsg{}, false
	}
	switch msg := cmd().(type) {
	case ResultMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if res, ok := findResult(c); ok {
				return res, true
			}
		}
	}
	return ResultMsg{}, false
}

func TestCheck_CorrectsText(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))

	m = check(t, m, "My Calender is wierd")
	if got := m.Result(); got != "My calendar is weird" {
		t.Errorf("Result() = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "2 corrections") {
		t.Error("view should list the corrections")
	}
}

func TestCheck_BlankIsNoop(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))
	m.editor.SetValue(" \n ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || next.(Model).state.Busy() {
		t.Error("blank text should not be checked")
	}
}

func TestCheck_FailureKeepsResult(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))
	m = check(t, m, "seperate")

	m.opts.Checker = failingChecker{}
	m = check(t, m, "anything")

	if m.Result() != "separate" {
		t.Errorf("failed check replaced the result: %q", m.Result())
	}
	toasts := m.toasts.Toasts()
	if len(toasts) != 1 || toasts[0].Message != screen.GrammarFailureMessage {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestResult_OtherScreenDropped(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))
	next, _ := m.Update(ResultMsg{ScreenID: uuid.New(), Corrected: "stale"})
	if next.(Model).Result() != "" {
		t.Error("a foreign result must be dropped")
	}
}

func TestClear(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))
	m = check(t, m, "calender")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if m.Result() != "" || m.editor.Value() != "" {
		t.Error("clear should empty the editor and the result")
	}
}

func TestClose_CancelsCheck(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(time.Hour))
	m.editor.SetValue("calender")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Close()
	res, ok := findResult(cmd)
	if !ok || !errors.Is(res.Err, context.Canceled) {
		t.Errorf("closed screen should cancel the check, got %+v", res)
	}
}

func TestExport(t *testing.T) {
	m := newTestModel(t, checker.NewDictionaryChecker(-1))
	m.now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	m = check(t, m, "calender")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	msg, ok := cmd().(components.ExportedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("export failed: %+v", msg)
	}
	if filepath.Base(msg.Path) != "grammar_20250314_092653.md" {
		t.Errorf("export path = %s", msg.Path)
	}
}
