// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"net/http"

	"github.com/jeranaias/mmq-tui/internal/model"
)

// =============================================================================
// ENDPOINTS
// =============================================================================

// Default endpoint URLs.
const (
	DefaultChatURL             = "https://langchain-grammar-check-api.onrender.com/chat/gemini/chat"
	DefaultSummarizeURL        = "http://127.0.0.1:8000/api/yt-video/summarize"
	DefaultSummarizeClassicURL = "http://127.0.0.1:5000/summarize"
)

// Fallback texts used when a structured response has none of the expected fields.
const (
	ChatFallback             = "Sorry, I couldn't process that request."
	SummarizeClassicFallback = "No summary returned from the API."
)

// Endpoint describes one remote service and how to read its responses.
type Endpoint struct {
	// Name identifies the endpoint in logs.
	Name string

	// Method is the HTTP method (default: POST)
	Method string

	URL string

	// Fields are the JSON fields holding the result text, in precedence order.
	Fields []string

	// Fallback is shown when a structured body has none of Fields.
	// Empty means the raw body is shown instead.
	Fallback string
}

func (e Endpoint) method() string {
	if e.Method == "" {
		return http.MethodPost
	}
	return e.Method
}

// Endpoints is the set of endpoints used by the feature screens.
// Each one is configured independently.
type Endpoints struct {
	Chat             Endpoint
	Summarize        Endpoint
	SummarizeClassic Endpoint
}

// DefaultEndpoints returns the compiled-in endpoint set.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Chat: Endpoint{
			Name:     "chat",
			URL:      DefaultChatURL,
			Fields:   []string{"response"},
			Fallback: ChatFallback,
		},
		Summarize: Endpoint{
			Name:   "summarize",
			URL:    DefaultSummarizeURL,
			Fields: []string{"summary", "text", "content"},
		},
		SummarizeClassic: Endpoint{
			Name:     "summarize_classic",
			URL:      DefaultSummarizeClassicURL,
			Fields:   []string{"summary"},
			Fallback: SummarizeClassicFallback,
		},
	}
}

// =============================================================================
// PAYLOADS
// =============================================================================

// ChatRequest is the chat endpoint payload.
type ChatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []model.HistoryEntry `json:"conversation_history"`
}

// SummarizeRequest is the summarize endpoint payload.
type SummarizeRequest struct {
	URL string `json:"url"`
}

// SummarizeClassicRequest is the classic summarize endpoint payload.
type SummarizeClassicRequest struct {
	VideoURL string `json:"video_url"`
}
