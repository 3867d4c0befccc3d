// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/export"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// =============================================================================
// SCREEN MESSAGES
// =============================================================================

// Every feature screen gets a fresh ID when it is mounted. Results of
// requests carry that ID and are dropped by any other screen instance.

// BackMsg asks the root model to return to the features menu.
type BackMsg struct {
	ScreenID uuid.UUID
}

// BackCmd returns a command emitting BackMsg for the screen.
func BackCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return BackMsg{ScreenID: id}
	}
}

// ThemeChangedMsg is broadcast after the configuration changed the theme.
type ThemeChangedMsg struct {
	Theme *styles.Theme
}

// ExportedMsg reports the outcome of writing a markdown export.
type ExportedMsg struct {
	ScreenID uuid.UUID
	Path     string
	Err      error
}

// SharedMsg reports the outcome of a share action.
type SharedMsg struct {
	ScreenID uuid.UUID
	Result   export.ShareResult
}

// ExportCmd runs write off the update loop.
func ExportCmd(id uuid.UUID, write func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		path, err := write()
		return ExportedMsg{ScreenID: id, Path: path, Err: err}
	}
}

// ShareCmd copies text to the clipboard off the update loop.
func ShareCmd(id uuid.UUID, text string) tea.Cmd {
	return func() tea.Msg {
		return SharedMsg{ScreenID: id, Result: export.Share(text)}
	}
}

// NotifyExported turns an export result into a toast.
func NotifyExported(toasts *ToastManager, msg ExportedMsg) {
	if msg.Err != nil {
		toasts.AddError("Export failed: " + msg.Err.Error())
		return
	}
	toasts.AddSuccess("Exported to " + msg.Path)
}

// NotifyShared turns a share result into a toast. When the clipboard is not
// available the fallback text itself is shown so it can be selected.
func NotifyShared(toasts *ToastManager, msg SharedMsg) {
	switch {
	case msg.Result.Copied:
		toasts.AddSuccess("Copied to clipboard")
	case msg.Result.Fallback != "":
		t := NewToast(ToastKindStatus, msg.Result.Fallback)
		t.Duration = ErrorToastDuration
		toasts.Add(t)
	case msg.Result.Err != nil:
		toasts.AddWarning(msg.Result.Err.Error())
	}
}

// =============================================================================
// REQUEST LIFETIME
// =============================================================================

// Lifetime scopes the requests a screen starts. Closing it cancels whatever
// is still running. It must be shared by pointer since models are copied on
// every update.
type Lifetime struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifetime creates an open lifetime.
func NewLifetime() *Lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifetime{ctx: ctx, cancel: cancel}
}

// Context returns the context requests should run under.
func (l *Lifetime) Context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx
}

// Close cancels the context. Safe to call more than once.
func (l *Lifetime) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
