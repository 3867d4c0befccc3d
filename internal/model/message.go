// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AI"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the chat log.
// Messages are values: once appended to a Conversation they are never modified.
type Message struct {
	ID        int       `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"` // Local image reference, never uploaded
	Timestamp time.Time `json:"timestamp"`
}

// IsUser returns true if the message was sent by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// HasImage returns true if an image reference is attached.
func (m Message) HasImage() bool {
	return m.Image != ""
}

// ImageName returns the base name of the attached image, or "" if none.
func (m Message) ImageName() string {
	if m.Image == "" {
		return ""
	}
	return filepath.Base(m.Image)
}

// IsEmpty reports whether the message carries neither text nor an image.
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == "" && m.Image == ""
}

// FormattedTime returns the timestamp as HH:MM.
func (m Message) FormattedTime() string {
	return m.Timestamp.Format("15:04")
}

// =============================================================================
// HISTORY ENTRY
// =============================================================================

// HistoryEntry is the {role, content} projection of a message that is sent
// back to the chat endpoint as conversation context.
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
