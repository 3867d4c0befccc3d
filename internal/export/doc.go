// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes screen content out of the TUI.
//
// Chat transcripts, summaries and grammar results are exported as Markdown
// files under the mmq data directory, and summaries can be shared through
// the system clipboard.
//
// # Usage
//
//	opts := export.DefaultOptions()
//	opts.OutputDir, _ = config.ExportDir()
//	path, err := export.ExportConversation(chat.Messages(), opts)
//
//	res := export.Share(summary)
//	if !res.Copied {
//	    fmt.Println(res.Fallback)
//	}
package export
