// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Multi-Modal Query screen.

The screen keeps a chat log seeded with a greeting. Each send posts the text
and the history of earlier successful turns to the chat endpoint; an attached
image is shown in the log but never uploaded. Replies are rendered as
markdown with glamour.

# Keys

	Enter      send
	A-Enter    new line
	C-o / C-x  attach / remove an image
	C-y        copy the last reply
	C-e        export the conversation as markdown
	Esc        back to the features menu

Gateway results carry the screen ID and are dropped by any other instance,
so a reply that arrives after the screen was left changes nothing.
*/
package chat
