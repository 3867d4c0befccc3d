// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestNewToastDurations(t *testing.T) {
	tests := []struct {
		kind ToastKind
		want time.Duration
	}{
		{ToastKindError, ErrorToastDuration},
		{ToastKindWarning, WarningToastDuration},
		{ToastKindSuccess, DefaultToastDuration},
		{ToastKindStatus, DefaultToastDuration},
	}
	for _, tt := range tests {
		toast := NewToast(tt.kind, "msg")
		if toast.Duration != tt.want {
			t.Errorf("%v toast duration = %v, want %v", tt.kind, toast.Duration, tt.want)
		}
	}
}

func TestToastExpiredAt(t *testing.T) {
	toast := NewToast(ToastKindStatus, "x")
	if toast.ExpiredAt(toast.CreatedAt) {
		t.Error("fresh toast should not be expired")
	}
	if !toast.ExpiredAt(toast.CreatedAt.Add(DefaultToastDuration)) {
		t.Error("toast should expire after its duration")
	}
}

func TestToastManager(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Fatal("new manager should be empty")
	}

	first := m.AddWarning("Please enter a YouTube URL")
	second := m.AddError("Failed to summarize the video. Please try again later.")
	if first == second {
		t.Error("ids should be unique")
	}

	toasts := m.Toasts()
	if len(toasts) != 2 || toasts[0].ID != second {
		t.Fatalf("newest toast should be first, got %+v", toasts)
	}

	m.Dismiss(second)
	if got := m.Toasts(); len(got) != 1 || got[0].ID != first {
		t.Errorf("Dismiss left %+v", got)
	}

	m.DismissAll()
	if m.HasToasts() {
		t.Error("DismissAll should empty the manager")
	}
}

func TestToastManagerLimit(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 5; i++ {
		m.AddStatus("status")
	}
	if got := len(m.Toasts()); got != 3 {
		t.Errorf("manager kept %d toasts, want 3", got)
	}
}

func TestToastManagerSweep(t *testing.T) {
	m := NewToastManager()
	m.AddSuccess("Copied to clipboard")
	m.AddError("failure")

	now := time.Now()
	if !m.Sweep(now) {
		t.Fatal("nothing should expire immediately")
	}
	if !m.Sweep(now.Add(DefaultToastDuration + time.Millisecond)) {
		t.Fatal("the error toast outlives the success toast")
	}
	if got := m.Toasts(); len(got) != 1 || got[0].Kind != ToastKindError {
		t.Errorf("after sweep got %+v", got)
	}
	if m.Sweep(now.Add(ErrorToastDuration + time.Second)) {
		t.Error("all toasts should be gone")
	}
}

func TestRenderToast(t *testing.T) {
	out := RenderToast(NewToast(ToastKindWarning, "Please enter a valid YouTube URL"), 80)
	if !strings.Contains(out, "[!]") {
		t.Error("warning toast should carry the warning marker")
	}
	if !strings.Contains(out, "valid YouTube URL") {
		t.Error("toast should contain its message")
	}

	if RenderToastStack(nil, 80) != "" {
		t.Error("empty stack should render nothing")
	}
}

func TestToastKindString(t *testing.T) {
	if ToastKindError.String() != "error" || ToastKind(42).String() != "kind(42)" {
		t.Error("unexpected ToastKind names")
	}
}
