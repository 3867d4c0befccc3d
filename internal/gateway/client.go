// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the remote inference services.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/model"
)

// RequestIDHeader carries the per-call request ID.
const RequestIDHeader = "X-Request-ID"

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "mmq-tui"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the gateway client.
type ClientConfig struct {
	// Endpoints used by the feature screens (default: DefaultEndpoints())
	Endpoints Endpoints

	// Timeout for a whole request. Zero means no timeout (default: 0)
	Timeout time.Duration

	// UserAgent header value (default: "mmq-tui")
	UserAgent string

	// Logger receives request/response events (default: no-op)
	Logger *zap.Logger

	// HTTPClient overrides the underlying client, mostly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Endpoints: DefaultEndpoints(),
		UserAgent: DefaultUserAgent,
		Logger:    zap.NewNop(),
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues single-attempt HTTP calls against the configured endpoints.
// There is no retry and no backoff: one user action is one network call.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := gateway.NewClient()
//	reply, err := client.Chat(ctx, "Hello", conv.History())
//	if err != nil {
//	    // show the generic failure text, err is for the log
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new gateway client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new gateway client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	defaults := DefaultEndpoints()
	fillEndpoint(&config.Endpoints.Chat, defaults.Chat)
	fillEndpoint(&config.Endpoints.Summarize, defaults.Summarize)
	fillEndpoint(&config.Endpoints.SummarizeClassic, defaults.SummarizeClassic)
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        config.Logger.Named("gateway"),
	}
}

func fillEndpoint(ep *Endpoint, def Endpoint) {
	if ep.Name == "" {
		ep.Name = def.Name
	}
	if ep.URL == "" {
		ep.URL = def.URL
	}
	if len(ep.Fields) == 0 {
		ep.Fields = def.Fields
	}
	if ep.Fallback == "" {
		ep.Fallback = def.Fallback
	}
}

// Endpoints returns the endpoint set in use.
func (c *Client) Endpoints() Endpoints {
	return c.config.Endpoints
}

// =============================================================================
// SEND
// =============================================================================

// Send issues exactly one request to ep. A nil payload sends no body.
//
// Any non-2xx status is a KindHTTPStatus error and transport failures are
// KindNetwork errors. A 2xx body that is not JSON is not an error: it comes
// back as a Raw response.
func (c *Client) Send(ctx context.Context, ep Endpoint, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: KindEncode, Endpoint: ep.Name, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method(), ep.URL, body)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Endpoint: ep.Name, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With(
		zap.String("request_id", requestID),
		zap.String("endpoint", ep.Name),
	)
	log.Debug("GATEWAY_REQUEST", zap.String("method", req.Method), zap.String("url", ep.URL))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		gerr := &Error{Kind: KindNetwork, Endpoint: ep.Name, Message: "request failed", Cause: err}
		if errors.Is(err, context.DeadlineExceeded) {
			gerr.Message = "request timed out"
		}
		log.Warn("GATEWAY_ERROR", zap.Stringer("kind", gerr.Kind), zap.Error(err))
		return nil, gerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		log.Warn("GATEWAY_ERROR", zap.Stringer("kind", KindNetwork), zap.Error(err))
		return nil, &Error{Kind: KindNetwork, Endpoint: ep.Name, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("GATEWAY_ERROR",
			zap.Stringer("kind", KindHTTPStatus),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return nil, newStatusError(ep.Name, resp.StatusCode, resp.Status)
	}

	result := newResponse(data)
	result.StatusCode = resp.StatusCode
	result.RequestID = requestID
	result.Duration = duration

	log.Info("GATEWAY_RESPONSE",
		zap.Int("status", resp.StatusCode),
		zap.Stringer("body", result.Kind),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// =============================================================================
// SCREEN OPERATIONS
// =============================================================================

// Chat sends one chat turn and returns the assistant text.
func (c *Client) Chat(ctx context.Context, message string, history []model.HistoryEntry) (string, error) {
	if history == nil {
		history = []model.HistoryEntry{}
	}
	ep := c.config.Endpoints.Chat
	resp, err := c.Send(ctx, ep, ChatRequest{Message: message, ConversationHistory: history})
	if err != nil {
		return "", err
	}
	return resp.Text(ep), nil
}

// Summarize requests a summary for a YouTube URL from the summarize endpoint.
func (c *Client) Summarize(ctx context.Context, url string) (string, error) {
	ep := c.config.Endpoints.Summarize
	resp, err := c.Send(ctx, ep, SummarizeRequest{URL: url})
	if err != nil {
		return "", err
	}
	return resp.Text(ep), nil
}

// SummarizeClassic requests a summary from the classic summarize endpoint.
func (c *Client) SummarizeClassic(ctx context.Context, videoURL string) (string, error) {
	ep := c.config.Endpoints.SummarizeClassic
	resp, err := c.Send(ctx, ep, SummarizeClassicRequest{VideoURL: videoURL})
	if err != nil {
		return "", err
	}
	return resp.Text(ep), nil
}
