// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/mmq-tui/internal/gateway"
	"github.com/jeranaias/mmq-tui/internal/model"
)

// DefaultOEmbedURL is the public oEmbed lookup.
const DefaultOEmbedURL = "https://www.youtube.com/oembed"

// ErrNoMetadata is returned when the lookup body is not oEmbed JSON.
var ErrNoMetadata = errors.New("no preview metadata in response")

// PreviewConfig configures the preview client.
type PreviewConfig struct {
	// OEmbedURL is the lookup base URL (default: DefaultOEmbedURL)
	OEmbedURL string

	// RatePerSecond caps lookups per second (default: 2)
	RatePerSecond float64

	// Burst is the limiter burst size (default: 1)
	Burst int

	Logger *zap.Logger
}

// PreviewClient fetches title and author for a video id.
// Lookups are best effort: callers treat any error as "no preview".
type PreviewClient struct {
	gw      *gateway.Client
	base    string
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewPreviewClient creates a preview client that sends through gw.
func NewPreviewClient(gw *gateway.Client, cfg PreviewConfig) *PreviewClient {
	if cfg.OEmbedURL == "" {
		cfg.OEmbedURL = DefaultOEmbedURL
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &PreviewClient{
		gw:      gw,
		base:    cfg.OEmbedURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		log:     cfg.Logger.Named("preview"),
	}
}

// LookupURL returns the oEmbed URL for a video id.
func (p *PreviewClient) LookupURL(videoID string) string {
	q := url.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")
	return p.base + "?" + q.Encode()
}

// Lookup fetches preview metadata for videoID.
// It waits for the rate limiter first, so a cancelled ctx aborts the wait.
func (p *PreviewClient) Lookup(ctx context.Context, videoID string) (*model.VideoPreview, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ep := gateway.Endpoint{Name: "oembed", Method: http.MethodGet, URL: p.LookupURL(videoID)}
	resp, err := p.gw.Send(ctx, ep, nil)
	if err != nil {
		p.log.Debug("PREVIEW_FETCH", zap.String("video_id", videoID), zap.Error(err))
		return nil, err
	}
	if resp.Kind != gateway.Structured {
		return nil, ErrNoMetadata
	}

	title, _ := resp.Field("title")
	author, _ := resp.Field("author_name")
	p.log.Debug("PREVIEW_FETCH", zap.String("video_id", videoID), zap.String("title", title))

	return &model.VideoPreview{
		VideoID:      videoID,
		Title:        title,
		Author:       author,
		ThumbnailURL: model.ThumbnailURLFor(videoID),
	}, nil
}
