// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - the "ask" command: one chat turn.
//
// Usage:
//
//	mmq ask "question"
//	mmq ask "what is this?" --image photo.png
//	mmq --json ask "question"
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/screen"
)

// HandleAsk sends one message, with an optional image, and prints the reply.
// The image only marks the message; like the TUI it is never uploaded.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	chat := screen.NewChat(screen.ChatOptions{})

	if args.Image != "" {
		ref, err := input.ResolveImage(args.Image)
		if err != nil {
			return &ValidationError{Field: "image", Value: args.Image, Reason: imageReason(err)}
		}
		chat.AttachImage(ref)
	}

	turn, err := chat.Submit(args.Query)
	if errors.Is(err, input.ErrEmpty) {
		return ErrMissingArgument("question", `mmq ask "What is the capital of France?"`)
	}
	if err != nil {
		return err
	}

	env.info(args, "%s", DimStyle.Render("Thinking..."))
	reply, err := env.Gateway.Chat(ctx, turn.Message, turn.History)
	chat.Complete(turn, reply, err)
	if err != nil {
		env.Log.Warn("ask failed", zap.Error(err))
		return NewCommandError("ask", screen.ChatFailureMessage, err)
	}

	if args.JSON {
		data := AskData{Query: turn.Message, Reply: reply}
		if turn.Image != "" {
			data.Image = filepath.Base(turn.Image)
		}
		return env.printJSON("ask", data)
	}
	fmt.Fprintln(env.Stdout, RenderMarkdown(reply))
	return nil
}

// imageReason turns an attach error into the reason shown to the user.
func imageReason(err error) string {
	switch {
	case errors.Is(err, input.ErrNotImage):
		return "not a supported image (" + strings.Join(input.ImageExtensions, " ") + ")"
	case errors.Is(err, input.ErrEmpty):
		return "no path given"
	}
	var imgErr *input.ImageError
	if errors.As(err, &imgErr) {
		return imgErr.Cause.Error()
	}
	return err.Error()
}
