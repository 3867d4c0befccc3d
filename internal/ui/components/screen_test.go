// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/export"
)

func TestBackCmd(t *testing.T) {
	id := uuid.New()
	msg, ok := BackCmd(id)().(BackMsg)
	if !ok {
		t.Fatal("BackCmd should emit BackMsg")
	}
	if msg.ScreenID != id {
		t.Errorf("ScreenID = %v, want %v", msg.ScreenID, id)
	}
}

func TestExportCmd(t *testing.T) {
	id := uuid.New()
	msg := ExportCmd(id, func() (string, error) { return "/tmp/chat.md", nil })().(ExportedMsg)
	if msg.ScreenID != id || msg.Path != "/tmp/chat.md" || msg.Err != nil {
		t.Errorf("unexpected msg %+v", msg)
	}
}

func TestNotifyExported(t *testing.T) {
	toasts := NewToastManager()

	NotifyExported(toasts, ExportedMsg{Path: "/tmp/chat.md"})
	got := toasts.Toasts()
	if len(got) != 1 || got[0].Kind != ToastKindSuccess || !strings.Contains(got[0].Message, "/tmp/chat.md") {
		t.Fatalf("success toast missing: %+v", got)
	}

	NotifyExported(toasts, ExportedMsg{Err: errors.New("disk full")})
	if got := toasts.Toasts()[0]; got.Kind != ToastKindError || !strings.Contains(got.Message, "disk full") {
		t.Errorf("error toast missing: %+v", got)
	}
}

func TestNotifyShared(t *testing.T) {
	tests := []struct {
		name   string
		result export.ShareResult
		kind   ToastKind
		text   string
	}{
		{"copied", export.ShareResult{Copied: true}, ToastKindSuccess, "Copied"},
		{"fallback", export.ShareResult{Fallback: "the summary", Err: errors.New("no clipboard")}, ToastKindStatus, "the summary"},
		{"nothing", export.ShareResult{Err: export.ErrNothingToShare}, ToastKindWarning, export.ErrNothingToShare.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toasts := NewToastManager()
			NotifyShared(toasts, SharedMsg{Result: tt.result})
			got := toasts.Toasts()
			if len(got) != 1 {
				t.Fatalf("want one toast, got %d", len(got))
			}
			if got[0].Kind != tt.kind || !strings.Contains(got[0].Message, tt.text) {
				t.Errorf("toast = %+v", got[0])
			}
			if got[0].ExpiredAt(got[0].CreatedAt) {
				t.Error("toast should not expire immediately")
			}
		})
	}
}

func TestLifetime(t *testing.T) {
	l := NewLifetime()
	ctx := l.Context()
	if ctx.Err() != nil {
		t.Fatal("new lifetime should be open")
	}
	l.Close()
	l.Close()
	if ctx.Err() == nil {
		t.Error("Close should cancel the context")
	}
}
