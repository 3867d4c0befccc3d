// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"errors"
	"time"
)

// Greeting is the assistant message every new conversation starts with.
const Greeting = "Hi there! I can help answer questions about images or text. Try uploading an image or asking me something!"

// ErrEmptyMessage is returned when a user message has neither text nor image.
var ErrEmptyMessage = errors.New("message has no content and no image")

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only chat log of one chat screen together with
// the history projection sent to the gateway on each turn.
//
// A Conversation is owned by a single screen and is not safe for concurrent use.
type Conversation struct {
	CreatedAt time.Time

	messages []Message
	history  []HistoryEntry
	nextID   int

	// now is overridable in tests.
	now func() time.Time
}

// NewConversation creates a conversation seeded with the assistant greeting
// as message 1. The greeting is not part of the history projection.
func NewConversation() *Conversation {
	c := newConversation()
	c.AppendAssistant(Greeting)
	return c
}

// NewEmptyConversation creates a conversation with no messages.
func NewEmptyConversation() *Conversation {
	return newConversation()
}

func newConversation() *Conversation {
	return &Conversation{
		CreatedAt: time.Now(),
		messages:  make([]Message, 0, 16),
		history:   make([]HistoryEntry, 0, 16),
		nextID:    1,
		now:       time.Now,
	}
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

// AppendUser appends a user message and returns a copy of it.
// Returns ErrEmptyMessage if both content and image are empty.
func (c *Conversation) AppendUser(content, image string) (Message, error) {
	msg := Message{Role: RoleUser, Content: content, Image: image}
	if msg.IsEmpty() {
		return Message{}, ErrEmptyMessage
	}
	return c.append(msg), nil
}

// AppendAssistant appends an assistant message and returns a copy of it.
func (c *Conversation) AppendAssistant(content string) Message {
	return c.append(Message{Role: RoleAssistant, Content: content})
}

func (c *Conversation) append(msg Message) Message {
	msg.ID = c.nextID
	msg.Timestamp = c.now()
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}

// Messages returns a copy of the message log in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, or false if the log is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastAssistant returns the most recent assistant message.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// =============================================================================
// HISTORY PROJECTION
// =============================================================================

// RecordTurn appends one user/assistant pair to the history projection.
func (c *Conversation) RecordTurn(user, assistant string) {
	c.history = append(c.history,
		HistoryEntry{Role: RoleUser, Content: user},
		HistoryEntry{Role: RoleAssistant, Content: assistant},
	)
}

// History returns a copy of the history projection.
func (c *Conversation) History() []HistoryEntry {
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// Turns returns the number of turns recorded in the history projection.
func (c *Conversation) Turns() int {
	return len(c.history) / 2
}
