// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"errors"
	"strings"
	"time"

	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/youtube"
)

// Variant selects which summarizer behaviour a screen has.
type Variant int

const (
	// VariantStandard validates the URL, shows a preview and sends {url}.
	VariantStandard Variant = iota
	// VariantClassic only checks for a non-empty link and sends {video_url}.
	VariantClassic
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	if v == VariantClassic {
		return "classic"
	}
	return "standard"
}

// Title returns the screen title.
func (v Variant) Title() string {
	if v == VariantClassic {
		return "YouTube Summarizer (classic)"
	}
	return "YouTube Summarizer"
}

// User-facing summarizer messages.
const (
	SummarizeFailureMessage        = "Failed to summarize the YouTube video. Please check your internet connection and try again."
	SummarizeClassicFailureMessage = "Failed to summarize the video. Please try again later."

	alertEmptyURL        = "Please enter a YouTube URL"
	alertInvalidURL      = "Please enter a valid YouTube URL"
	alertEmptyClassicURL = "Please enter a YouTube link to summarize."
	alertBusy            = "Please wait for the current request to finish."
)

// PreviewRequest tells the caller what preview work an URL edit needs.
type PreviewRequest struct {
	Gen     uint64
	VideoID string
	// Lookup is true when VideoID should be fetched once Gen is still
	// current after the debounce delay.
	Lookup bool
}

// Summarizer is the state of one YouTube summarizer screen.
type Summarizer struct {
	variant  Variant
	view     model.SummaryView
	state    model.RequestState
	debounce *input.Debouncer
	// dropResult is set when Clear runs while a request is in flight.
	dropResult bool
}

// NewSummarizer creates an empty summarizer.
func NewSummarizer(variant Variant, debounce time.Duration) *Summarizer {
	return &Summarizer{
		variant:  variant,
		debounce: input.NewDebouncer(debounce),
	}
}

// Variant returns the screen variant.
func (s *Summarizer) Variant() Variant {
	return s.variant
}

// View returns a copy of what the screen displays.
func (s *Summarizer) View() model.SummaryView {
	v := s.view
	if v.Preview != nil {
		p := *v.Preview
		v.Preview = &p
	}
	return v
}

// State returns the request state.
func (s *Summarizer) State() model.RequestState {
	return s.state
}

// Busy reports whether a request is in flight.
func (s *Summarizer) Busy() bool {
	return s.state == model.StateInFlight
}

// DebounceDelay returns the preview debounce delay.
func (s *Summarizer) DebounceDelay() time.Duration {
	return s.debounce.Delay()
}

// =============================================================================
// URL AND PREVIEW
// =============================================================================

// SetURL records an edit of the URL field. Any shown preview is cleared at
// once and all earlier preview generations become stale.
func (s *Summarizer) SetURL(url string) PreviewRequest {
	if url == s.view.URL {
		return PreviewRequest{Gen: s.debounce.Current()}
	}
	s.view = model.SummaryView{URL: url, Result: s.view.Result}
	gen := s.debounce.Bump()

	if s.variant != VariantStandard || input.IsBlank(url) {
		return PreviewRequest{Gen: gen}
	}
	id, ok := youtube.ExtractVideoID(url)
	return PreviewRequest{Gen: gen, VideoID: id, Lookup: ok}
}

// PreviewDue reports whether a debounce timer for gen may start its lookup.
func (s *Summarizer) PreviewDue(gen uint64) bool {
	return s.debounce.IsCurrent(gen)
}

// ApplyPreview stores a lookup result if gen is still current.
// A nil preview means the lookup failed. Returns false if the result was stale.
func (s *Summarizer) ApplyPreview(gen uint64, p *model.VideoPreview) bool {
	if !s.debounce.IsCurrent(gen) {
		return false
	}
	s.view.Preview = p
	return true
}

// =============================================================================
// REQUEST REDUCERS
// =============================================================================

// Submit validates the URL and moves to InFlight.
// It returns the value to send: trimmed for the standard variant and as
// typed for the classic one.
func (s *Summarizer) Submit() (string, error) {
	if s.Busy() {
		return "", ErrBusy
	}
	url := s.view.URL
	if input.IsBlank(url) {
		return "", input.ErrEmpty
	}
	if s.variant == VariantStandard {
		if !youtube.IsValidURL(url) {
			return "", input.ErrInvalidURL
		}
		url = strings.TrimSpace(url)
	}
	s.state = model.StateInFlight
	s.dropResult = false
	return url, nil
}

// Succeed replaces the result slot. A result for a request that was in
// flight when the screen was cleared is dropped.
func (s *Summarizer) Succeed(text string) {
	if !s.dropResult {
		s.view.Result = text
	}
	s.dropResult = false
	s.state = model.StateIdle
}

// Fail returns to Idle and keeps the previous result.
func (s *Summarizer) Fail() {
	s.dropResult = false
	s.state = model.StateIdle
}

// Clear empties URL, result and preview in one step and invalidates any
// pending preview work. An in-flight request is not cancelled but its
// result will not be shown.
func (s *Summarizer) Clear() {
	s.view = model.SummaryView{}
	s.debounce.Bump()
	s.dropResult = s.Busy()
}

// =============================================================================
// MESSAGES
// =============================================================================

// FailureMessage returns the generic text shown when a request fails.
func (s *Summarizer) FailureMessage() string {
	if s.variant == VariantClassic {
		return SummarizeClassicFailureMessage
	}
	return SummarizeFailureMessage
}

// Alert returns the text shown for a Submit validation error.
func (s *Summarizer) Alert(err error) string {
	switch {
	case errors.Is(err, ErrBusy):
		return alertBusy
	case errors.Is(err, input.ErrEmpty):
		if s.variant == VariantClassic {
			return alertEmptyClassicURL
		}
		return alertEmptyURL
	case errors.Is(err, input.ErrInvalidURL):
		return alertInvalidURL
	case err != nil:
		return err.Error()
	}
	return ""
}
