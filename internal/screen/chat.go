// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/model"
)

// ChatFailureMessage is appended to the log when a chat turn fails.
const ChatFailureMessage = "Sorry, I encountered an error while processing your request. Please try again later."

// ChatOptions tunes turn bookkeeping.
type ChatOptions struct {
	// RecordFailedTurns also appends failed turns (user text plus the failure
	// message) to the history sent to the gateway. Off by default: only
	// successful turns are sent back as context.
	RecordFailedTurns bool
}

// ChatTurn is one submitted chat turn awaiting the gateway.
type ChatTurn struct {
	UserID  int
	Message string
	Image   string
	// History is the projection as it was before this turn.
	History []model.HistoryEntry
}

// Chat is the state of one Multi-Modal Query screen.
type Chat struct {
	conv         *model.Conversation
	state        model.RequestState
	pendingImage string
	opts         ChatOptions
}

// NewChat creates a chat seeded with the greeting.
func NewChat(opts ChatOptions) *Chat {
	return &Chat{
		conv: model.NewConversation(),
		opts: opts,
	}
}

// Messages returns the chat log.
func (c *Chat) Messages() []model.Message {
	return c.conv.Messages()
}

// History returns the history projection.
func (c *Chat) History() []model.HistoryEntry {
	return c.conv.History()
}

// LastReply returns the latest assistant message.
func (c *Chat) LastReply() (model.Message, bool) {
	return c.conv.LastAssistant()
}

// State returns the request state.
func (c *Chat) State() model.RequestState {
	return c.state
}

// Busy reports whether a turn is in flight.
func (c *Chat) Busy() bool {
	return c.state == model.StateInFlight
}

// =============================================================================
// IMAGE ATTACHMENT
// =============================================================================

// AttachImage sets the pending image, replacing any previous one.
func (c *Chat) AttachImage(ref string) {
	c.pendingImage = ref
}

// RemoveImage drops the pending image.
func (c *Chat) RemoveImage() {
	c.pendingImage = ""
}

// PendingImage returns the image that will go with the next turn.
func (c *Chat) PendingImage() string {
	return c.pendingImage
}

// =============================================================================
// TURN REDUCERS
// =============================================================================

// CanSubmit reports whether Submit(text) would be accepted.
func (c *Chat) CanSubmit(text string) bool {
	return !c.Busy() && (!input.IsBlank(text) || c.pendingImage != "")
}

// Submit appends the user message and moves to InFlight.
// The pending image goes with the message and is cleared.
//
// Returns ErrBusy while a turn is in flight and input.ErrEmpty if there is
// neither text nor an image. Neither error changes any state.
func (c *Chat) Submit(text string) (ChatTurn, error) {
	if c.Busy() {
		return ChatTurn{}, ErrBusy
	}
	if input.IsBlank(text) && c.pendingImage == "" {
		return ChatTurn{}, input.ErrEmpty
	}

	text = input.Normalize(text)
	history := c.conv.History()
	msg, err := c.conv.AppendUser(text, c.pendingImage)
	if err != nil {
		return ChatTurn{}, input.ErrEmpty
	}

	c.pendingImage = ""
	c.state = model.StateInFlight

	return ChatTurn{
		UserID:  msg.ID,
		Message: text,
		Image:   msg.Image,
		History: history,
	}, nil
}

// Succeed appends the reply and records the turn in the history.
// It is ignored unless a turn is in flight.
func (c *Chat) Succeed(turn ChatTurn, reply string) model.Message {
	if !c.Busy() {
		return model.Message{}
	}
	msg := c.conv.AppendAssistant(reply)
	c.conv.RecordTurn(turn.Message, reply)
	c.state = model.StateIdle
	return msg
}

// Fail appends ChatFailureMessage. The turn only reaches the history if
// RecordFailedTurns is set. It is ignored unless a turn is in flight.
func (c *Chat) Fail(turn ChatTurn) model.Message {
	if !c.Busy() {
		return model.Message{}
	}
	msg := c.conv.AppendAssistant(ChatFailureMessage)
	if c.opts.RecordFailedTurns {
		c.conv.RecordTurn(turn.Message, ChatFailureMessage)
	}
	c.state = model.StateIdle
	return msg
}

// Complete dispatches to Succeed or Fail.
func (c *Chat) Complete(turn ChatTurn, reply string, err error) model.Message {
	if err != nil {
		return c.Fail(turn)
	}
	return c.Succeed(turn, reply)
}
