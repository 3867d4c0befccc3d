// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type chatCall struct {
	message string
	history []model.HistoryEntry
}

type fakeGateway struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []chatCall
}

func (f *fakeGateway) Chat(_ context.Context, message string, history []model.HistoryEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatCall{message: message, history: history})
	return f.reply, f.err
}

func newTestModel(t *testing.T, gw *fakeGateway) Model {
	t.Helper()
	m := New(styles.NewTheme(styles.ModeDark), Options{
		Gateway:   gw,
		ExportDir: t.TempDir(),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// findMsg runs cmd, expanding batches, and returns the first message of type T.
func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if found, ok := findMsg[T](c); ok {
				return found, true
			}
		}
	}
	return zero, false
}

// send types text and presses Enter, returning the gateway response.
func send(t *testing.T, m Model, text string) (Model, ResponseMsg) {
	t.Helper()
	m.composer.SetValue(text)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.chat.Busy() {
		t.Fatal("chat should be in flight after send")
	}
	resp, ok := findMsg[ResponseMsg](cmd)
	if !ok {
		t.Fatal("send produced no ResponseMsg")
	}
	return m, resp
}

// =============================================================================
// TURNS
// =============================================================================

func TestNew_StartsWithGreeting(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})

	msgs := m.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the greeting, got %d messages", len(msgs))
	}
	if msgs[0].Role != model.RoleAssistant || msgs[0].Content != model.Greeting {
		t.Errorf("unexpected first message %+v", msgs[0])
	}
}

func TestSend_PostsTextAndAppendsReply(t *testing.T) {
	gw := &fakeGateway{reply: "Paris."}
	m := newTestModel(t, gw)

	m, resp := send(t, m, "Capital of France?")
	if m.composer.Value() != "" {
		t.Error("composer should be cleared after send")
	}
	if resp.ScreenID != m.ID() {
		t.Error("response should carry the screen ID")
	}
	if len(gw.calls) != 1 || gw.calls[0].message != "Capital of France?" || len(gw.calls[0].history) != 0 {
		t.Fatalf("unexpected gateway calls %+v", gw.calls)
	}

	m, _ = update(t, m, resp)
	if m.chat.Busy() {
		t.Error("chat should be idle after the reply")
	}
	msgs := m.Messages()
	if len(msgs) != 3 || msgs[2].Content != "Paris." {
		t.Fatalf("reply not appended: %+v", msgs)
	}

	// The next turn carries the first one as history.
	_, _ = send(t, m, "And Italy?")
	if got := gw.calls[1].history; len(got) != 2 || got[0].Content != "Capital of France?" || got[1].Content != "Paris." {
		t.Errorf("history = %+v", got)
	}
}

func TestSend_BlankIsNoop(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, gw)

	m.composer.SetValue("   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank send should not start a request")
	}
	if m.chat.Busy() || len(m.Messages()) != 1 {
		t.Error("blank send should not change the chat")
	}
}

func TestSend_WhileBusyWarns(t *testing.T) {
	m := newTestModel(t, &fakeGateway{reply: "ok"})
	m, _ = send(t, m, "first")

	m.composer.SetValue("second")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	toasts := m.toasts.Toasts()
	if len(toasts) != 1 || toasts[0].Kind != components.ToastKindWarning {
		t.Fatalf("expected a warning toast, got %+v", toasts)
	}
	if len(m.Messages()) != 2 {
		t.Error("second send should not be appended")
	}
}

func TestResponse_FailureAppendsApology(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	m := newTestModel(t, gw)

	m, resp := send(t, m, "hello")
	m, _ = update(t, m, resp)

	last := m.Messages()[len(m.Messages())-1]
	if last.Content != screen.ChatFailureMessage {
		t.Errorf("last message = %q", last.Content)
	}

	// Failed turns are not sent back as context.
	gw.err = nil
	_, _ = send(t, m, "again")
	if len(gw.calls[1].history) != 0 {
		t.Errorf("failed turn leaked into history: %+v", gw.calls[1].history)
	}
}

func TestResponse_OtherScreenDropped(t *testing.T) {
	m := newTestModel(t, &fakeGateway{reply: "ok"})
	m, resp := send(t, m, "hello")

	resp.ScreenID = uuid.New()
	m, _ = update(t, m, resp)
	if !m.chat.Busy() {
		t.Error("a foreign response must not complete the turn")
	}
	if len(m.Messages()) != 2 {
		t.Errorf("foreign response appended a message: %d", len(m.Messages()))
	}
}

// =============================================================================
// IMAGES
// =============================================================================

func TestAttachImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	gw := &fakeGateway{reply: "A cat."}
	m := newTestModel(t, gw)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.attaching {
		t.Fatal("C-o should open the image prompt")
	}
	m.imageInput.SetValue(path)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.attaching || m.chat.PendingImage() != path {
		t.Fatalf("image not attached: attaching=%v pending=%q", m.attaching, m.chat.PendingImage())
	}
	if !strings.Contains(m.View(), "cat.png") {
		t.Error("pending image should be shown")
	}

	// An image alone is enough to send; the image is never uploaded.
	m, _ = send(t, m, "")
	user := m.Messages()[1]
	if user.Image != path {
		t.Errorf("user message image = %q", user.Image)
	}
	if m.chat.PendingImage() != "" {
		t.Error("pending image should clear after send")
	}
	if gw.calls[0].message != "" {
		t.Errorf("unexpected message sent: %q", gw.calls[0].message)
	}
}

func TestAttachImage_InvalidPath(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m.imageInput.SetValue(filepath.Join(t.TempDir(), "missing.png"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.attaching {
		t.Error("prompt should stay open after a bad path")
	}
	toasts := m.toasts.Toasts()
	if len(toasts) != 1 || toasts[0].Kind != components.ToastKindError {
		t.Errorf("expected an error toast, got %+v", toasts)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.attaching {
		t.Error("Esc should close the prompt")
	}
}

func TestRemoveImage(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})
	m.chat.AttachImage("/tmp/cat.png")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if m.chat.PendingImage() != "" {
		t.Error("C-x should remove the pending image")
	}
}

// =============================================================================
// NAVIGATION AND EXPORT
// =============================================================================

func TestBack(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	back, ok := findMsg[components.BackMsg](cmd)
	if !ok || back.ScreenID != m.ID() {
		t.Errorf("Esc should go back, got %+v", back)
	}
}

func TestExport(t *testing.T) {
	m := newTestModel(t, &fakeGateway{reply: "Paris."})
	m.now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	m, resp := send(t, m, "Capital of France?")
	m, _ = update(t, m, resp)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	exported, ok := findMsg[components.ExportedMsg](cmd)
	if !ok {
		t.Fatal("C-e should export")
	}
	if exported.Err != nil {
		t.Fatalf("export failed: %v", exported.Err)
	}
	if filepath.Base(exported.Path) != "chat_20250314_092653.md" {
		t.Errorf("export path = %s", exported.Path)
	}

	m, _ = update(t, m, exported)
	if toasts := m.toasts.Toasts(); len(toasts) != 1 || toasts[0].Kind != components.ToastKindSuccess {
		t.Errorf("expected a success toast, got %+v", toasts)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})
	view := m.View()
	if !strings.Contains(view, Title) {
		t.Error("view should show the title")
	}
	if !strings.Contains(view, "idle") {
		t.Error("view should show the request state")
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC), "09:05"},
		{time.Date(2025, 3, 12, 9, 5, 0, 0, time.UTC), "Wed 09:05"},
		{time.Date(2025, 1, 2, 9, 5, 0, 0, time.UTC), "Jan 2 09:05"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.at, now); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("the quick brown fox", 10)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("short", 10) != "short" {
		t.Error("short text should be unchanged")
	}
}
