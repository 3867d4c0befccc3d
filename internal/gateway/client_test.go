// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mmq-tui/internal/model"
)

// newTestClient points every endpoint at the given server.
func newTestClient(serverURL string) *Client {
	eps := DefaultEndpoints()
	eps.Chat.URL = serverURL
	eps.Summarize.URL = serverURL
	eps.SummarizeClassic.URL = serverURL
	return NewClientWithConfig(&ClientConfig{Endpoints: eps})
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestChat_RequestShape(t *testing.T) {
	var got ChatRequest
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestID = r.Header.Get(RequestIDHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "hello back"}`))
	}))
	defer server.Close()

	history := []model.HistoryEntry{
		{Role: model.RoleUser, Content: "q1"},
		{Role: model.RoleAssistant, Content: "a1"},
	}
	reply, err := newTestClient(server.URL).Chat(context.Background(), "hello", history)

	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, history, got.ConversationHistory)
	assert.NotEmpty(t, requestID)
}

func TestChat_NilHistorySendsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"response": "ok"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["conversation_history"]))
}

func TestSummarize_PayloadKeys(t *testing.T) {
	tests := []struct {
		name    string
		call    func(c *Client) error
		wantKey string
	}{
		{
			name: "summarize sends url",
			call: func(c *Client) error {
				_, err := c.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
				return err
			},
			wantKey: "url",
		},
		{
			name: "classic sends video_url",
			call: func(c *Client) error {
				_, err := c.SummarizeClassic(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
				return err
			},
			wantKey: "video_url",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				w.Write([]byte(`{"summary": "s"}`))
			}))
			defer server.Close()

			require.NoError(t, tc.call(newTestClient(server.URL)))
			assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", body[tc.wantKey])
			assert.Len(t, body, 1)
		})
	}
}

func TestSend_ExactlyOneCallOnFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "https://youtu.be/x")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "no retry expected")
}

func TestSend_NilPayloadHasNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.Write([]byte(`{"title": "t"}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Send(context.Background(),
		Endpoint{Name: "preview", Method: http.MethodGet, URL: server.URL}, nil)
	require.NoError(t, err)
	assert.Equal(t, Structured, resp.Kind)
	assert.NotEmpty(t, resp.RequestID)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestSend_HTTPStatusError(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte(`{"summary": "ignored"}`))
		}))

		_, err := newTestClient(server.URL).Summarize(context.Background(), "u")
		server.Close()

		require.Error(t, err)
		got, ok := StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, code, got)
		assert.False(t, IsNetwork(err))
	}
}

func TestSend_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))

	_, ok := StatusCode(err)
	assert.False(t, ok)
}

func TestSend_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Chat(ctx, "hi", nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestError_Message(t *testing.T) {
	err := newStatusError("chat", 502, "502 Bad Gateway")
	assert.Equal(t, "chat: request failed with status 502 Bad Gateway", err.Error())
}

// =============================================================================
// RESPONSE POLICY TESTS
// =============================================================================

func TestResponse_Text(t *testing.T) {
	eps := DefaultEndpoints()

	tests := []struct {
		name string
		ep   Endpoint
		body string
		want string
		kind BodyKind
	}{
		{"chat response field", eps.Chat, `{"response": "hi"}`, "hi", Structured},
		{"chat missing field uses fallback", eps.Chat, `{"other": 1}`, ChatFallback, Structured},
		{"chat empty field uses fallback", eps.Chat, `{"response": ""}`, ChatFallback, Structured},
		{"chat raw body", eps.Chat, `plain words`, "plain words", Raw},
		{"summarize summary", eps.Summarize, `{"summary": "S", "text": "T"}`, "S", Structured},
		{"summarize text before content", eps.Summarize, `{"content": "C", "text": "T"}`, "T", Structured},
		{"summarize content", eps.Summarize, `{"content": "C"}`, "C", Structured},
		{"summarize null summary skipped", eps.Summarize, `{"summary": null, "content": "C"}`, "C", Structured},
		{"summarize no field yields raw", eps.Summarize, `{"title": "x"}`, `{"title": "x"}`, Structured},
		{"summarize markdown text", eps.Summarize, "# Title\n\n- point", "# Title\n\n- point", Raw},
		{"classic summary", eps.SummarizeClassic, `{"summary": "S"}`, "S", Structured},
		{"classic missing summary", eps.SummarizeClassic, `{}`, SummarizeClassicFallback, Structured},
		{"classic raw body", eps.SummarizeClassic, `not json`, "not json", Raw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := newResponse([]byte(tc.body))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.Equal(t, tc.want, resp.Text(tc.ep))
		})
	}
}

func TestSummarize_EndToEnd(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json summary", `{"summary": "exactly this"}`, "exactly this"},
		{"plain text verbatim", "  a plain\nsummary  ", "  a plain\nsummary  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			got, err := newTestClient(server.URL).Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	eps := c.Endpoints()

	assert.Equal(t, DefaultChatURL, eps.Chat.URL)
	assert.Equal(t, DefaultSummarizeURL, eps.Summarize.URL)
	assert.Equal(t, DefaultSummarizeClassicURL, eps.SummarizeClassic.URL)
	assert.Equal(t, []string{"summary", "text", "content"}, eps.Summarize.Fields)
	assert.Equal(t, ChatFallback, eps.Chat.Fallback)
}
