// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// =============================================================================
// REQUEST STATE
// =============================================================================

// RequestState guards whether a screen may issue a new request.
type RequestState int

const (
	StateIdle RequestState = iota
	StateInFlight
)

// String returns the string representation of the state.
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	default:
		return "unknown"
	}
}

// =============================================================================
// VIDEO PREVIEW
// =============================================================================

// VideoPreview is the metadata shown for a recognised YouTube URL.
type VideoPreview struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ThumbnailURLFor returns the max-resolution thumbnail URL for a video id.
func ThumbnailURLFor(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

// WatchURL returns the canonical watch URL of the previewed video.
func (p VideoPreview) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + p.VideoID
}

// =============================================================================
// SUMMARY SLOT
// =============================================================================

// SummaryView is everything a summarizer screen displays.
// It is replaced as a whole so no partially cleared state is observable.
type SummaryView struct {
	URL     string
	Result  string
	Preview *VideoPreview
}

// IsZero reports whether the view is fully cleared.
func (v SummaryView) IsZero() bool {
	return v.URL == "" && v.Result == "" && v.Preview == nil
}

// HasResult reports whether a summary is present.
func (v SummaryView) HasResult() bool {
	return v.Result != ""
}
