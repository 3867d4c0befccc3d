// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"), "Multi-Modal Query")
	h.SetWidth(80)

	out := h.View()
	if !strings.Contains(out, Brand) || !strings.Contains(out, "Multi-Modal Query") {
		t.Errorf("header missing brand or title: %q", out)
	}
	if !strings.Contains(out, "[idle]") {
		t.Errorf("header missing state badge: %q", out)
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("header width = %d, want 80", w)
	}

	h.SetState(model.StateInFlight)
	if !strings.Contains(h.View(), "[in-flight]") {
		t.Error("header should show the in-flight state")
	}
}

func TestHeaderNarrow(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"), "YouTube Summarizer (classic)")
	h.SetWidth(30)

	out := h.View()
	if strings.Contains(out, "(classic)") {
		t.Errorf("title should be truncated on narrow terminals: %q", out)
	}
	if !strings.Contains(out, Brand) {
		t.Error("brand should survive truncation")
	}
}
