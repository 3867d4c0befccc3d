// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the line-mode commands of mmq.
//
// Every command drives the same screen state objects as the TUI, so
// validation, generic failure messages and chat history behave the same in
// both front ends.
//
// # Commands
//
//   - tui: the features menu (default)
//   - ask: one chat turn, optionally with an image
//   - chat: interactive chat with line editing and input history
//   - summarize: one YouTube summary (--classic for the classic service)
//   - grammar: local grammar correction
//   - preview: video title and channel for a YouTube URL
//   - config: show, path, get, set, keys
//   - version, help
//
// One-shot commands accept --json and write a JSONResponse to stdout.
// Human-readable diagnostics always go to stderr.
package cli
