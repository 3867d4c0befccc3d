// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mmq-tui/internal/screen"
)

// =============================================================================
// GATEWAY MESSAGES
// =============================================================================

// ResponseMsg carries the gateway outcome of one chat turn.
type ResponseMsg struct {
	ScreenID uuid.UUID
	Turn     screen.ChatTurn
	Reply    string
	Err      error
}

// SendCmd posts the turn to the gateway. The image never leaves the device,
// only the text and the history are sent.
func SendCmd(ctx context.Context, gw Gateway, id uuid.UUID, turn screen.ChatTurn) tea.Cmd {
	return func() tea.Msg {
		reply, err := gw.Chat(ctx, turn.Message, turn.History)
		return ResponseMsg{
			ScreenID: id,
			Turn:     turn,
			Reply:    reply,
			Err:      err,
		}
	}
}
