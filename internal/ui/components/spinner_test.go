// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestNewSpinner(t *testing.T) {
	s := NewSpinner(ThinkingMessage)

	if s.IsActive() {
		t.Error("NewSpinner() should not be active initially")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
	if s.Elapsed() != 0 {
		t.Error("Elapsed() should be zero before Start")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner(SummarizingMessage)

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), SummarizingMessage) {
		t.Errorf("View() = %q, want message", s.View())
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should stop")
	}
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("stopped spinner should not keep ticking")
	}
}

func TestSpinnerTimer(t *testing.T) {
	s := NewSpinner(CheckingMessage)
	s.Start()
	if !strings.Contains(s.View(), "(0s)") {
		t.Errorf("View() = %q, want elapsed timer", s.View())
	}

	s.Stop()
	if s.View() != "" {
		t.Errorf("View() = %q after Stop", s.View())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{65 * time.Second, "1m 5s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
