// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package summarize

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/screen"
)

// PreviewTickMsg fires when the URL has been quiet for the debounce delay.
type PreviewTickMsg struct {
	ScreenID uuid.UUID
	Gen      uint64
	VideoID  string
}

// PreviewMsg carries a preview lookup result. A nil Preview means no preview.
type PreviewMsg struct {
	ScreenID uuid.UUID
	Gen      uint64
	Preview  *model.VideoPreview
	Err      error
}

// ResultMsg carries the gateway outcome of a summarize request.
type ResultMsg struct {
	ScreenID uuid.UUID
	Text     string
	Err      error
}

// debounceCmd waits out the debounce delay for one URL edit.
func debounceCmd(id uuid.UUID, req screen.PreviewRequest, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return PreviewTickMsg{ScreenID: id, Gen: req.Gen, VideoID: req.VideoID}
	})
}

// lookupCmd fetches the preview for a still-current generation.
func lookupCmd(ctx context.Context, p PreviewLookup, id uuid.UUID, tick PreviewTickMsg) tea.Cmd {
	return func() tea.Msg {
		preview, err := p.Lookup(ctx, tick.VideoID)
		return PreviewMsg{ScreenID: id, Gen: tick.Gen, Preview: preview, Err: err}
	}
}

// summarizeCmd posts the URL to the endpoint of the variant.
func summarizeCmd(ctx context.Context, gw Gateway, variant screen.Variant, id uuid.UUID, url string) tea.Cmd {
	return func() tea.Msg {
		var text string
		var err error
		if variant == screen.VariantClassic {
			text, err = gw.SummarizeClassic(ctx, url)
		} else {
			text, err = gw.Summarize(ctx, url)
		}
		return ResultMsg{ScreenID: id, Text: text, Err: err}
	}
}
