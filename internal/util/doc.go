// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the mmq application.
//
// # Key Functions
//
// String Utilities:
//   - Ellipsize, RuneLen, FirstLine: UTF-8 safe text helpers
//   - TruncateWidth, StringWidth: terminal cell aware helpers (go-runewidth)
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	title := util.TruncateWidth(preview.Title, 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
