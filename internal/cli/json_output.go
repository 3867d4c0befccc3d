// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for one-shot commands.
package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the envelope every --json command writes.
type JSONResponse struct {
	Success bool `json:"success"`

	// Data is the command-specific payload
	Data any `json:"data"`

	// Error is the error message, null on success
	Error     *string `json:"error"`
	ErrorType string  `json:"error_type,omitempty"`

	// Timestamp is RFC3339 UTC
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

var jsonNow = time.Now

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: jsonNow().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Error:     &errStr,
		Timestamp: jsonNow().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is the payload of "ask".
type AskData struct {
	Query string `json:"query"`
	Image string `json:"image,omitempty"`
	Reply string `json:"reply"`
}

// SummaryData is the payload of "summarize".
type SummaryData struct {
	URL     string `json:"url"`
	Variant string `json:"variant"`
	Summary string `json:"summary"`
}

// GrammarData is the payload of "grammar".
type GrammarData struct {
	Original    string           `json:"original"`
	Corrected   string           `json:"corrected"`
	Corrections []CorrectionData `json:"corrections"`
}

// CorrectionData is one replaced word.
type CorrectionData struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Offset      int    `json:"offset"`
}

// PreviewData is the payload of "preview".
type PreviewData struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Author       string `json:"author,omitempty"`
	WatchURL     string `json:"watch_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// VersionData is the payload of "version".
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// ConfigValueData is the payload of "config get" and "config set".
type ConfigValueData struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
