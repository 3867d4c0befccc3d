// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the state owned by the feature screens: the chat log
// and its history projection, the summarizer result slot, and video preview
// metadata. Everything here lives in process memory only.
//
// # Key Types
//
//   - Conversation: Append-only message log plus the history sent to the gateway
//   - Message: Immutable entry with sequence ID, role, content and optional image
//   - HistoryEntry: {role, content} pair element sent as conversation context
//   - SummaryView: URL, result and preview of a summarizer, replaced as a unit
//   - RequestState: Idle / InFlight guard
//
// # Usage
//
//	conv := model.NewConversation() // message 1 is the greeting
//	msg, err := conv.AppendUser("What is in this picture?", "/tmp/cat.png")
//	reply := conv.AppendAssistant("A cat.")
//	conv.RecordTurn(msg.Content, reply.Content)
package model
