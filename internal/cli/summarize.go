// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/screen"
)

// HandleSummarize summarizes one video. --classic sends the link as typed
// to the classic service, which only requires it to be non-empty.
func HandleSummarize(ctx context.Context, env *Env, args Args) error {
	variant := screen.VariantStandard
	if args.Classic {
		variant = screen.VariantClassic
	}
	s := screen.NewSummarizer(variant, 0)
	s.SetURL(args.URL)

	url, err := s.Submit()
	if err != nil {
		return alertError(s.Alert(err))
	}

	env.info(args, "%s", DimStyle.Render("Summarizing..."))
	var text string
	if variant == screen.VariantClassic {
		text, err = env.Gateway.SummarizeClassic(ctx, url)
	} else {
		text, err = env.Gateway.Summarize(ctx, url)
	}
	if err != nil {
		s.Fail()
		env.Log.Warn("summarize failed", zap.Stringer("variant", variant), zap.Error(err))
		return NewCommandError("summarize", s.FailureMessage(), err)
	}
	s.Succeed(text)

	if args.JSON {
		return env.printJSON("summarize", SummaryData{
			URL:     url,
			Variant: variant.String(),
			Summary: text,
		})
	}
	fmt.Fprintln(env.Stdout, RenderMarkdown(s.View().Result))
	return nil
}
