// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/mmq-tui/internal/youtube"
)

// HandlePreview prints the oEmbed metadata of a video.
func HandlePreview(ctx context.Context, env *Env, args Args) error {
	if args.URL == "" {
		return ErrMissingArgument("url", "mmq preview https://youtu.be/dQw4w9WgXcQ")
	}
	id, ok := youtube.ExtractVideoID(args.URL)
	if !ok {
		return &ValidationError{Field: "url", Value: args.URL, Reason: "not a YouTube video URL"}
	}

	p, err := env.Preview.Lookup(ctx, id)
	if err != nil {
		return NewCommandError("preview", "No preview is available for this video.", err)
	}

	if args.JSON {
		return env.printJSON("preview", PreviewData{
			VideoID:      p.VideoID,
			Title:        p.Title,
			Author:       p.Author,
			WatchURL:     p.WatchURL(),
			ThumbnailURL: p.ThumbnailURL,
		})
	}

	fmt.Fprintln(env.Stdout, TitleStyle.Render(p.Title))
	if p.Author != "" {
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Channel"), ValueStyle.Render(p.Author))
	}
	fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Watch"), p.WatchURL())
	fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Thumbnail"), p.ThumbnailURL)
	return nil
}
